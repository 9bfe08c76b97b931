package domain

import (
	"context"
	"time"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Listing, error)

	// FindActive returns active listings, newest first. A limit of 0
	// means unbounded.
	FindActive(ctx context.Context, limit int64) ([]*Listing, error)

	// FindByUserID returns all listings owned by a user, newest first.
	FindByUserID(ctx context.Context, userID string) ([]*Listing, error)

	// FindByIDs resolves listing ids to full records, preserving the
	// order of the given ids. Missing ids are skipped, not errors.
	FindByIDs(ctx context.Context, ids []string) ([]*Listing, error)

	// FindPromoted returns active listings holding a live promoted slot
	// of one of the given types at the given instant (featured, and not
	// expired — a null expiry never expires). Ordered by promotion type
	// ascending, then creation time descending, so "kesfet" ranks ahead
	// of "kesfet_free". A limit of 0 means unbounded.
	FindPromoted(ctx context.Context, types []PromotionType, now time.Time, limit int64) ([]*Listing, error)

	// FindActiveExcluding returns the most recently created active
	// listings whose ids are not in excludeIDs, newest first.
	FindActiveExcluding(ctx context.Context, excludeIDs []string, limit int64) ([]*Listing, error)
}
