package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pazarlio/marketplace/internal/user/domain"
)

type UserRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewUserRepository(db *mongo.Database, logger *zap.Logger) *UserRepository {
	repo := &UserRepository{
		collection: db.Collection("users"),
		logger:     logger,
	}
	repo.ensureIndexes()
	return repo
}

func (r *UserRepository) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		r.logger.Warn("failed to ensure user indexes", zap.Error(err))
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)

	doc, err := toUserDocument(user)
	if err != nil {
		return err
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "phone") {
				return domain.ErrDuplicatePhone
			}
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert user: unexpected inserted id type %T", res.InsertedID)
	}
	user.ID = oid.Hex()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

// ToggleFavorite flips favorites membership without an application-level
// read-modify-write: a $pull that removes nothing means the listing was not
// a favorite, so it is $addToSet-ed instead. Concurrent toggles from the
// same user cannot lose each other's updates.
func (r *UserRepository) ToggleFavorite(ctx context.Context, userID, listingID string) (bool, []string, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil, domain.ErrUserNotFound
	}
	filter := bson.M{"_id": oid}

	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$pull": bson.M{"favorites": listingID}})
	if err != nil {
		return false, nil, fmt.Errorf("pull favorite: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, nil, domain.ErrUserNotFound
	}

	added := false
	if res.ModifiedCount == 0 {
		if _, err := r.collection.UpdateOne(ctx, filter, bson.M{"$addToSet": bson.M{"favorites": listingID}}); err != nil {
			return false, nil, fmt.Errorf("add favorite: %w", err)
		}
		added = true
	}

	var doc struct {
		Favorites []string `bson:"favorites"`
	}
	opts := options.FindOne().SetProjection(bson.M{"favorites": 1})
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		return false, nil, fmt.Errorf("read favorites: %w", err)
	}
	if doc.Favorites == nil {
		doc.Favorites = []string{}
	}
	return added, doc.Favorites, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(&doc), nil
}
