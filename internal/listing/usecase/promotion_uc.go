package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pazarlio/marketplace/internal/listing/domain"
)

// PromotionReceipt is what a successful promotion purchase returns: the
// updated listing plus the looked-up price and effective duration. Nothing
// is persisted for the purchase itself, there is no payment gateway here.
type PromotionReceipt struct {
	Listing      *domain.Listing `json:"listing"`
	Cost         int             `json:"cost"`
	DurationDays int             `json:"duration"`
}

// PromotionUsecase is the visibility ranking engine: it computes the
// featured, discover and spotlight sets and performs the promote
// transition.
type PromotionUsecase struct {
	repo   domain.ListingRepository
	cache  ListingCache
	events EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

func NewPromotionUsecase(repo domain.ListingRepository, cache ListingCache, events EventPublisher, logger *zap.Logger) *PromotionUsecase {
	return &PromotionUsecase{
		repo:   repo,
		cache:  cache,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// Featured returns up to 12 active listings holding a live vitrin slot,
// newest first.
func (uc *PromotionUsecase) Featured(ctx context.Context) ([]*domain.Listing, error) {
	return uc.repo.FindPromoted(ctx, []domain.PromotionType{domain.PromotionVitrin}, uc.now(), domain.FeaturedLimit)
}

// Spotlight returns up to 5 active listings holding a live spotlight slot,
// newest first.
func (uc *PromotionUsecase) Spotlight(ctx context.Context) ([]*domain.Listing, error) {
	return uc.repo.FindPromoted(ctx, []domain.PromotionType{domain.PromotionSpotlight}, uc.now(), domain.SpotlightLimit)
}

// Discover builds the discover feed: live paid (kesfet) promotions first,
// then live free (kesfet_free) ones, each newest first. When fewer than 20
// promoted listings exist the feed is backfilled with the newest active
// listings not already present, so the result holds min(20, total eligible)
// entries and never a duplicate id.
func (uc *PromotionUsecase) Discover(ctx context.Context) ([]*domain.Listing, error) {
	promoted, err := uc.repo.FindPromoted(ctx,
		[]domain.PromotionType{domain.PromotionKesfet, domain.PromotionKesfetFree}, uc.now(), 0)
	if err != nil {
		uc.logger.Error("failed to load promoted listings for discover", zap.Error(err))
		return nil, err
	}

	if len(promoted) >= domain.DiscoverLimit {
		return promoted[:domain.DiscoverLimit], nil
	}

	excluded := make([]string, 0, len(promoted))
	for _, l := range promoted {
		excluded = append(excluded, l.ID)
	}
	backfill, err := uc.repo.FindActiveExcluding(ctx, excluded, int64(domain.DiscoverLimit-len(promoted)))
	if err != nil {
		uc.logger.Error("failed to backfill discover feed", zap.Error(err))
		return nil, err
	}
	return append(promoted, backfill...), nil
}

// Promote purchases a promotion slot for the listing. Owner only, and only
// types present in the price table may be purchased (kesfet_free is
// system-assigned, never sold). The transition is an idempotent overwrite:
// any prior promotion state is unconditionally replaced, concurrent
// promotes resolve last-writer-wins.
func (uc *PromotionUsecase) Promote(ctx context.Context, id, userID string, ptype domain.PromotionType, durationDays int) (*PromotionReceipt, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, domain.ErrListingNotFound
		}
		uc.logger.Error("failed to load listing for promotion", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}
	if listing.UserID != userID {
		uc.logger.Warn("promotion denied, caller is not the owner",
			zap.String("listing_id", id), zap.String("owner_id", listing.UserID), zap.String("user_id", userID))
		return nil, domain.ErrNotOwner
	}

	price, ok := domain.PromotionPrices[ptype]
	if !ok {
		uc.logger.Warn("promotion rejected, unknown type",
			zap.String("listing_id", id), zap.String("promotion_type", string(ptype)))
		return nil, domain.ErrInvalidPromotionType
	}

	if durationDays <= 0 {
		durationDays = domain.DefaultPromotionDays
	}
	now := uc.now()
	featuredUntil := now.Add(time.Duration(durationDays) * 24 * time.Hour)

	listing.Featured = true
	listing.PromotionType = ptype
	listing.FeaturedUntil = &featuredUntil
	listing.UpdatedAt = now

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("failed to persist promotion", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("listing promoted",
		zap.String("listing_id", id), zap.String("promotion_type", string(ptype)),
		zap.Int("duration_days", durationDays), zap.Int("cost", price))

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, id); err != nil {
			uc.logger.Warn("listing cache invalidation failed", zap.String("listing_id", id), zap.Error(err))
		}
	}
	if uc.events != nil {
		if err := uc.events.Publish(ctx, SubjectListingPromoted, listing); err != nil {
			uc.logger.Warn("failed to publish promotion event", zap.String("listing_id", id), zap.Error(err))
		}
	}

	return &PromotionReceipt{Listing: listing, Cost: price, DurationDays: durationDays}, nil
}
