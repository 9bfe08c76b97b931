package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pazarlio/marketplace/internal/listing/domain"
)

// CreateListingInput carries the caller-supplied fields of a new listing.
// Promotion state is never taken from the caller, see CreateListing.
type CreateListingInput struct {
	Title        string
	Description  string
	Price        float64
	PriceType    domain.PriceType
	Location     string
	Images       []string
	MainCategory string
	SubCategory  string
	Details      domain.ListingDetails
	Contact      domain.Contact
}

// UpdateListingInput is a partial merge: nil fields are left untouched.
type UpdateListingInput struct {
	Title        *string
	Description  *string
	Price        *float64
	PriceType    *domain.PriceType
	Location     *string
	Images       *[]string
	MainCategory *string
	SubCategory  *string
	Details      *domain.ListingDetails
	Contact      *domain.Contact
	Status       *domain.ListingStatus
}

type ListingUsecase struct {
	repo   domain.ListingRepository
	cache  ListingCache
	events EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

func NewListingUsecase(repo domain.ListingRepository, cache ListingCache, events EventPublisher, logger *zap.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:   repo,
		cache:  cache,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

var requiredListingFields = []struct {
	name    string
	missing func(*CreateListingInput) bool
}{
	{"title", func(in *CreateListingInput) bool { return in.Title == "" }},
	{"description", func(in *CreateListingInput) bool { return in.Description == "" }},
	{"price", func(in *CreateListingInput) bool { return in.Price == 0 }},
	{"location", func(in *CreateListingInput) bool { return in.Location == "" }},
	{"mainCategory", func(in *CreateListingInput) bool { return in.MainCategory == "" }},
	{"subCategory", func(in *CreateListingInput) bool { return in.SubCategory == "" }},
}

// CreateListing persists a new active listing for userID. Every new listing
// is auto-promoted with a free 24h discover slot regardless of input.
func (uc *ListingUsecase) CreateListing(ctx context.Context, userID string, in CreateListingInput) (*domain.Listing, error) {
	var missing []string
	for _, f := range requiredListingFields {
		if f.missing(&in) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		uc.logger.Warn("listing create rejected, missing fields",
			zap.String("user_id", userID), zap.Strings("fields", missing))
		return nil, &domain.MissingFieldsError{Fields: missing}
	}

	now := uc.now()
	featuredUntil := now.Add(domain.FreePromotionTTL)
	priceType := in.PriceType
	if priceType == "" {
		priceType = domain.PriceFixed
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}

	listing := &domain.Listing{
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		PriceType:     priceType,
		Location:      in.Location,
		Images:        images,
		MainCategory:  in.MainCategory,
		SubCategory:   in.SubCategory,
		Details:       in.Details,
		Contact:       in.Contact,
		UserID:        userID,
		Status:        domain.StatusActive,
		Featured:      true,
		FeaturedUntil: &featuredUntil,
		PromotionType: domain.PromotionKesfetFree,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("failed to create listing", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("listing created",
		zap.String("listing_id", listing.ID), zap.String("user_id", userID),
		zap.String("promotion_type", string(listing.PromotionType)))

	uc.publish(ctx, SubjectListingCreated, listing)
	return listing, nil
}

// UpdateListing merges the given fields into the listing. Only the owner may
// update; existence is checked before ownership so a missing listing is
// always reported as not found, never as forbidden.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, id, userID string, in UpdateListingInput) (*domain.Listing, error) {
	listing, err := uc.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		listing.Title = *in.Title
	}
	if in.Description != nil {
		listing.Description = *in.Description
	}
	if in.Price != nil {
		listing.Price = *in.Price
	}
	if in.PriceType != nil {
		listing.PriceType = *in.PriceType
	}
	if in.Location != nil {
		listing.Location = *in.Location
	}
	if in.Images != nil {
		listing.Images = *in.Images
	}
	if in.MainCategory != nil {
		listing.MainCategory = *in.MainCategory
	}
	if in.SubCategory != nil {
		listing.SubCategory = *in.SubCategory
	}
	if in.Details != nil {
		listing.Details = *in.Details
	}
	if in.Contact != nil {
		listing.Contact = *in.Contact
	}
	if in.Status != nil {
		listing.Status = *in.Status
	}
	listing.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("failed to update listing", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}
	uc.invalidate(ctx, id)
	return listing, nil
}

// DeleteListing removes the listing. Owner only.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, id, userID string) error {
	listing, err := uc.findOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return err
	}
	uc.logger.Info("listing deleted", zap.String("listing_id", id), zap.String("user_id", userID))
	uc.invalidate(ctx, id)
	uc.publish(ctx, SubjectListingDeleted, listing)
	return nil
}

func (uc *ListingUsecase) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.GetListing(ctx, id); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			uc.logger.Warn("listing cache read failed", zap.String("listing_id", id), zap.Error(err))
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("listing cache write failed", zap.String("listing_id", id), zap.Error(err))
		}
	}
	return listing, nil
}

// ActiveListings returns all active listings, newest first.
func (uc *ListingUsecase) ActiveListings(ctx context.Context) ([]*domain.Listing, error) {
	return uc.repo.FindActive(ctx, 0)
}

// ListingsByUser returns every listing owned by userID, newest first.
func (uc *ListingUsecase) ListingsByUser(ctx context.Context, userID string) ([]*domain.Listing, error) {
	return uc.repo.FindByUserID(ctx, userID)
}

// findOwned loads a listing and enforces the ownership rule. The not-found
// case always wins over the ownership check.
func (uc *ListingUsecase) findOwned(ctx context.Context, id, userID string) (*domain.Listing, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, domain.ErrListingNotFound
		}
		uc.logger.Error("failed to load listing", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}
	if listing.UserID != userID {
		uc.logger.Warn("mutation denied, caller is not the owner",
			zap.String("listing_id", id), zap.String("owner_id", listing.UserID), zap.String("user_id", userID))
		return nil, domain.ErrNotOwner
	}
	return listing, nil
}

func (uc *ListingUsecase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteListing(ctx, id); err != nil {
		uc.logger.Warn("listing cache invalidation failed", zap.String("listing_id", id), zap.Error(err))
	}
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, listing *domain.Listing) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, listing); err != nil {
		uc.logger.Warn("failed to publish listing event",
			zap.String("subject", subject), zap.String("listing_id", listing.ID), zap.Error(err))
	}
}
