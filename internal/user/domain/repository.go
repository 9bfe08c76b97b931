package domain

import "context"

type UserRepository interface {
	// Create persists a new user, hashing the plaintext password. Returns
	// ErrDuplicateEmail or ErrDuplicatePhone on unique index violations.
	Create(ctx context.Context, user *User) error

	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)

	// ToggleFavorite atomically flips membership of listingID in the
	// user's favorites set at the store layer and returns whether the
	// listing ended up added, plus the resulting set.
	ToggleFavorite(ctx context.Context, userID, listingID string) (added bool, favorites []string, err error)
}
