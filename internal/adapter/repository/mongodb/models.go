package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	listingdomain "github.com/pazarlio/marketplace/internal/listing/domain"
	userdomain "github.com/pazarlio/marketplace/internal/user/domain"
)

// listingDocument is the MongoDB shape of a Listing. featured_until has no
// omitempty: a nil value must be stored as an explicit null so the
// "never expires" queries match it.
type listingDocument struct {
	ID            primitive.ObjectID           `bson:"_id,omitempty"`
	Title         string                       `bson:"title"`
	Description   string                       `bson:"description"`
	Price         float64                      `bson:"price"`
	PriceType     listingdomain.PriceType      `bson:"price_type"`
	Location      string                       `bson:"location"`
	Images        []string                     `bson:"images"`
	MainCategory  string                       `bson:"main_category"`
	SubCategory   string                       `bson:"sub_category"`
	Details       listingdomain.ListingDetails `bson:"details"`
	Contact       listingdomain.Contact        `bson:"contact"`
	UserID        string                       `bson:"user_id"`
	Status        listingdomain.ListingStatus  `bson:"status"`
	Featured      bool                         `bson:"featured"`
	FeaturedUntil *time.Time                   `bson:"featured_until"`
	PromotionType listingdomain.PromotionType  `bson:"promotion_type"`
	CreatedAt     time.Time                    `bson:"created_at"`
	UpdatedAt     time.Time                    `bson:"updated_at"`
}

func toListingDocument(l *listingdomain.Listing) (*listingDocument, error) {
	if l == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("toListingDocument: invalid listing id %q: %w", l.ID, err)
		}
	}

	return &listingDocument{
		ID:            docID,
		Title:         l.Title,
		Description:   l.Description,
		Price:         l.Price,
		PriceType:     l.PriceType,
		Location:      l.Location,
		Images:        l.Images,
		MainCategory:  l.MainCategory,
		SubCategory:   l.SubCategory,
		Details:       l.Details,
		Contact:       l.Contact,
		UserID:        l.UserID,
		Status:        l.Status,
		Featured:      l.Featured,
		FeaturedUntil: l.FeaturedUntil,
		PromotionType: l.PromotionType,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}, nil
}

func toDomainListing(d *listingDocument) *listingdomain.Listing {
	if d == nil {
		return nil
	}
	return &listingdomain.Listing{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Description:   d.Description,
		Price:         d.Price,
		PriceType:     d.PriceType,
		Location:      d.Location,
		Images:        d.Images,
		MainCategory:  d.MainCategory,
		SubCategory:   d.SubCategory,
		Details:       d.Details,
		Contact:       d.Contact,
		UserID:        d.UserID,
		Status:        d.Status,
		Featured:      d.Featured,
		FeaturedUntil: d.FeaturedUntil,
		PromotionType: d.PromotionType,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toDomainListings(docs []*listingDocument) []*listingdomain.Listing {
	listings := make([]*listingdomain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, toDomainListing(doc))
	}
	return listings
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Password  string             `bson:"password"`
	Favorites []string           `bson:"favorites"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func toUserDocument(u *userdomain.User) (*userDocument, error) {
	if u == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if u.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, fmt.Errorf("toUserDocument: invalid user id %q: %w", u.ID, err)
		}
	}

	return &userDocument{
		ID:        docID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Password:  u.Password,
		Favorites: u.Favorites,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}

func toDomainUser(d *userDocument) *userdomain.User {
	if d == nil {
		return nil
	}
	favorites := d.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return &userdomain.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Password:  d.Password,
		Favorites: favorites,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
