package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/pazarlio/marketplace/internal/user/domain"
)

// Claims is the JWT payload expected on protected routes.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Auth is the authentication gate for protected routes. It resolves the
// Bearer credential to an existing user and stores both the user id and the
// user on the request context. Every failure mode is a 401, the response
// message tells the caller which step failed without leaking internals.
func Auth(jwtSecret string, users domain.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "authorization header is missing")
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if tokenString == "" {
				unauthorized(w, "authorization token is missing")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					logger.Warn("auth failed, token expired", zap.String("path", r.URL.Path))
					unauthorized(w, "token has expired")
					return
				}
				logger.Warn("auth failed, token rejected", zap.String("path", r.URL.Path), zap.Error(err))
				unauthorized(w, "token is invalid")
				return
			}
			if !token.Valid || claims.UserID == "" {
				logger.Warn("auth failed, token carries no subject", zap.String("path", r.URL.Path))
				unauthorized(w, "token is invalid")
				return
			}

			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					logger.Warn("auth failed, user no longer exists", zap.String("user_id", claims.UserID))
					unauthorized(w, "user not found")
					return
				}
				logger.Error("auth failed, user lookup error", zap.String("user_id", claims.UserID), zap.Error(err))
				unauthorized(w, "please sign in again")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, user.ID)
			ctx = context.WithValue(ctx, UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user id set by Auth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(string)
	return id, ok
}

// UserFromContext extracts the resolved user set by Auth.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*domain.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
