package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	listingdomain "github.com/pazarlio/marketplace/internal/listing/domain"
	"github.com/pazarlio/marketplace/internal/user/domain"
)

const tokenTTL = 24 * time.Hour

// Mailer sends the registration welcome email. Delivery is best-effort.
type Mailer interface {
	SendWelcomeEmail(toEmail, name string) error
}

// Claims is the JWT payload issued on register/login and expected back by
// the auth middleware.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type UserUsecase struct {
	repo      domain.UserRepository
	listings  listingdomain.ListingRepository
	mailer    Mailer
	jwtSecret string
	logger    *zap.Logger
	now       func() time.Time
}

func NewUserUsecase(repo domain.UserRepository, listings listingdomain.ListingRepository, mailer Mailer, jwtSecret string, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{
		repo:      repo,
		listings:  listings,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a user and signs them in immediately. Duplicate email or
// phone surfaces as a validation error from the repository.
func (uc *UserUsecase) Register(ctx context.Context, name, email, phone, password string) (string, *domain.User, error) {
	now := uc.now()
	user := &domain.User{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Password:  password, // hashed by the repository
		Favorites: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.Create(ctx, user); err != nil {
		uc.logger.Warn("registration failed", zap.String("email", email), zap.Error(err))
		return "", nil, err
	}
	uc.logger.Info("user registered", zap.String("user_id", user.ID))

	if uc.mailer != nil {
		go func() {
			if err := uc.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
				uc.logger.Warn("failed to send welcome email", zap.String("user_id", user.ID), zap.Error(err))
			}
		}()
	}

	token, err := uc.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login authenticates by email. An unknown email and a wrong password both
// fail with a 400-class error, the unknown-email case does not leak which
// accounts exist.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	return uc.finishLogin(user, password)
}

// LoginByPhone authenticates by phone number.
func (uc *UserUsecase) LoginByPhone(ctx context.Context, phone, password string) (string, *domain.User, error) {
	user, err := uc.repo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	return uc.finishLogin(user, password)
}

func (uc *UserUsecase) finishLogin(user *domain.User, password string) (string, *domain.User, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		uc.logger.Warn("login failed, password mismatch", zap.String("user_id", user.ID))
		return "", nil, domain.ErrInvalidPassword
	}
	token, err := uc.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	uc.logger.Info("user logged in", zap.String("user_id", user.ID))
	return token, user, nil
}

func (uc *UserUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.repo.FindByID(ctx, userID)
}

// ToggleFavorite flips favorite membership for the listing and returns the
// resulting set. The flip is atomic at the store layer.
func (uc *UserUsecase) ToggleFavorite(ctx context.Context, userID, listingID string) ([]string, error) {
	added, favorites, err := uc.repo.ToggleFavorite(ctx, userID, listingID)
	if err != nil {
		uc.logger.Error("failed to toggle favorite",
			zap.String("user_id", userID), zap.String("listing_id", listingID), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("favorite toggled",
		zap.String("user_id", userID), zap.String("listing_id", listingID), zap.Bool("added", added))
	return favorites, nil
}

// Listings returns every listing the user owns, newest first.
func (uc *UserUsecase) Listings(ctx context.Context, userID string) ([]*listingdomain.Listing, error) {
	return uc.listings.FindByUserID(ctx, userID)
}

// Favorites resolves the user's favorite listing ids to full records,
// preserving insertion order. Listings deleted since being favorited are
// silently dropped.
func (uc *UserUsecase) Favorites(ctx context.Context, userID string) ([]*listingdomain.Listing, error) {
	user, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Favorites) == 0 {
		return []*listingdomain.Listing{}, nil
	}
	return uc.listings.FindByIDs(ctx, user.Favorites)
}

func (uc *UserUsecase) issueToken(userID string) (string, error) {
	now := uc.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		uc.logger.Error("failed to sign token", zap.Error(err))
		return "", err
	}
	return signed, nil
}
