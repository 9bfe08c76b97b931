package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/pazarlio/marketplace/internal/listing/domain"
)

type ListingRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewListingRepository(db *mongo.Database, logger *zap.Logger) *ListingRepository {
	repo := &ListingRepository{
		collection: db.Collection("listings"),
		logger:     logger,
	}
	repo.ensureIndexes()
	return repo
}

func (r *ListingRepository) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "promotion_type", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		r.logger.Warn("failed to ensure listing indexes", zap.Error(err))
	}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert listing: unexpected inserted id type %T", res.InsertedID)
	}
	listing.ID = oid.Hex()
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}

	id := doc.ID
	doc.ID = primitive.NilObjectID // keep the immutable _id out of $set
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("update listing %s: %w", listing.ID, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing %s: %w", id, err)
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) FindActive(ctx context.Context, limit int64) ([]*domain.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.findAll(ctx, bson.M{"status": domain.StatusActive}, opts)
}

func (r *ListingRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findAll(ctx, bson.M{"user_id": userID}, opts)
}

func (r *ListingRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Listing, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue // stale favorite, skip
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.Listing{}, nil
	}

	found, err := r.findAll(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find())
	if err != nil {
		return nil, err
	}

	// $in gives no order guarantee, restore the caller's id order.
	byID := make(map[string]*domain.Listing, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}
	ordered := make([]*domain.Listing, 0, len(found))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}

func (r *ListingRepository) FindPromoted(ctx context.Context, types []domain.PromotionType, now time.Time, limit int64) ([]*domain.Listing, error) {
	filter := bson.M{
		"status":         domain.StatusActive,
		"featured":       true,
		"promotion_type": bson.M{"$in": types},
		"$or": bson.A{
			bson.M{"featured_until": nil},
			bson.M{"featured_until": bson.M{"$gte": now}},
		},
	}

	// promotion_type ascending ranks "kesfet" ahead of "kesfet_free".
	opts := options.Find().SetSort(bson.D{
		{Key: "promotion_type", Value: 1},
		{Key: "created_at", Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.findAll(ctx, filter, opts)
}

func (r *ListingRepository) FindActiveExcluding(ctx context.Context, excludeIDs []string, limit int64) ([]*domain.Listing, error) {
	oids := make([]primitive.ObjectID, 0, len(excludeIDs))
	for _, id := range excludeIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	filter := bson.M{"status": domain.StatusActive}
	if len(oids) > 0 {
		filter["_id"] = bson.M{"$nin": oids}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.findAll(ctx, filter, opts)
}

func (r *ListingRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return toDomainListings(docs), nil
}
