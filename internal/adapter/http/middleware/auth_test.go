package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pazarlio/marketplace/internal/user/domain"
)

const testSecret = "test-secret"

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) ToggleFavorite(ctx context.Context, userID, listingID string) (bool, []string, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Get(1).([]string), args.Error(2)
}

func signToken(t *testing.T, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doAuthRequest(repo *MockUserRepository, authHeader string) (*httptest.ResponseRecorder, *http.Request) {
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(testSecret, repo, zap.NewNop())(next)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func authMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, _ := doAuthRequest(new(MockUserRepository), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authorization header is missing", authMessage(t, rec))
}

func TestAuth_EmptyToken(t *testing.T) {
	rec, _ := doAuthRequest(new(MockUserRepository), "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authorization token is missing", authMessage(t, rec))
}

func TestAuth_MalformedToken(t *testing.T) {
	rec, _ := doAuthRequest(new(MockUserRepository), "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token is invalid", authMessage(t, rec))
}

func TestAuth_WrongSignature(t *testing.T) {
	claims := &Claims{UserID: "u1"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	rec, _ := doAuthRequest(new(MockUserRepository), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token is invalid", authMessage(t, rec))
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, "u1", time.Now().Add(-time.Hour))
	rec, _ := doAuthRequest(new(MockUserRepository), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token has expired", authMessage(t, rec))
}

func TestAuth_TokenWithoutSubject(t *testing.T) {
	token := signToken(t, "", time.Now().Add(time.Hour))
	rec, _ := doAuthRequest(new(MockUserRepository), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token is invalid", authMessage(t, rec))
}

func TestAuth_UserNoLongerExists(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

	token := signToken(t, "ghost", time.Now().Add(time.Hour))
	rec, _ := doAuthRequest(repo, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "user not found", authMessage(t, rec))
}

func TestAuth_Success(t *testing.T) {
	repo := new(MockUserRepository)
	user := &domain.User{ID: "u1", Email: "a@b.c"}
	repo.On("FindByID", mock.Anything, "u1").Return(user, nil)

	token := signToken(t, "u1", time.Now().Add(time.Hour))
	rec, captured := doAuthRequest(repo, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)

	gotID, ok := UserIDFromContext(captured.Context())
	assert.True(t, ok)
	assert.Equal(t, "u1", gotID)

	gotUser, ok := UserFromContext(captured.Context())
	assert.True(t, ok)
	assert.Equal(t, user, gotUser)
}
