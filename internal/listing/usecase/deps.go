package usecase

import (
	"context"

	"github.com/pazarlio/marketplace/internal/listing/domain"
)

// ListingCache is the read-through cache for single-listing lookups.
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
}

// EventPublisher fans listing lifecycle events out to interested services.
// Publishing is best-effort: failures are logged by the caller and never
// fail the originating request.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Subjects for listing lifecycle events.
const (
	SubjectListingCreated  = "listings.created"
	SubjectListingPromoted = "listings.promoted"
	SubjectListingDeleted  = "listings.deleted"
)
