package domain

import "time"

type ListingStatus string

const (
	StatusActive   ListingStatus = "active"
	StatusSold     ListingStatus = "sold"
	StatusInactive ListingStatus = "inactive"
)

type PriceType string

const (
	PriceFixed      PriceType = "fixed"
	PriceNegotiable PriceType = "negotiable"
)

// PromotionType is the visibility tier assigned to a listing.
type PromotionType string

const (
	PromotionNone       PromotionType = "none"
	PromotionVitrin     PromotionType = "vitrin"
	PromotionKesfet     PromotionType = "kesfet"
	PromotionKesfetFree PromotionType = "kesfet_free"
	PromotionSpotlight  PromotionType = "spotlight"
)

// PromotionPrices is the fixed price table for purchasable promotions.
// PromotionKesfetFree is system-assigned only and deliberately absent.
var PromotionPrices = map[PromotionType]int{
	PromotionVitrin:    25,
	PromotionKesfet:    50,
	PromotionSpotlight: 100,
}

const (
	FeaturedLimit  = 12
	DiscoverLimit  = 20
	SpotlightLimit = 5

	// FreePromotionTTL is how long a fresh listing stays in the discover
	// feed at no cost.
	FreePromotionTTL = 24 * time.Hour

	DefaultPromotionDays = 7
)

type VehicleDetails struct {
	Brand        string `bson:"brand,omitempty" json:"brand,omitempty"`
	Series       string `bson:"series,omitempty" json:"series,omitempty"`
	Model        string `bson:"model,omitempty" json:"model,omitempty"`
	Year         int    `bson:"year,omitempty" json:"year,omitempty"`
	Fuel         string `bson:"fuel,omitempty" json:"fuel,omitempty"`
	Transmission string `bson:"transmission,omitempty" json:"transmission,omitempty"`
	Mileage      int    `bson:"mileage,omitempty" json:"mileage,omitempty"`
	BodyType     string `bson:"body_type,omitempty" json:"bodyType,omitempty"`
	Color        string `bson:"color,omitempty" json:"color,omitempty"`
	DamageRecord string `bson:"damage_record,omitempty" json:"damageRecord,omitempty"`
	Exchange     string `bson:"exchange,omitempty" json:"exchange,omitempty"`
}

type PropertyDetails struct {
	PropertyType string `bson:"property_type,omitempty" json:"propertyType,omitempty"`
	ListingType  string `bson:"listing_type,omitempty" json:"listingType,omitempty"`
	Area         int    `bson:"area,omitempty" json:"area,omitempty"`
	RoomCount    string `bson:"room_count,omitempty" json:"roomCount,omitempty"`
	BuildingAge  string `bson:"building_age,omitempty" json:"buildingAge,omitempty"`
	Floor        int    `bson:"floor,omitempty" json:"floor,omitempty"`
	TotalFloors  int    `bson:"total_floors,omitempty" json:"totalFloors,omitempty"`
	Heating      string `bson:"heating,omitempty" json:"heating,omitempty"`
	Furnished    string `bson:"furnished,omitempty" json:"furnished,omitempty"`
	Balcony      bool   `bson:"balcony,omitempty" json:"balcony,omitempty"`
	Elevator     bool   `bson:"elevator,omitempty" json:"elevator,omitempty"`
	Parking      bool   `bson:"parking,omitempty" json:"parking,omitempty"`
}

type UsedItemDetails struct {
	MainCategory      string `bson:"main_category,omitempty" json:"mainCategory,omitempty"`
	SubCategory       string `bson:"sub_category,omitempty" json:"subCategory,omitempty"`
	ItemCondition     string `bson:"item_condition,omitempty" json:"itemCondition,omitempty"`
	Brand             string `bson:"brand,omitempty" json:"brand,omitempty"`
	Model             string `bson:"model,omitempty" json:"model,omitempty"`
	ShippingAvailable string `bson:"shipping_available,omitempty" json:"shippingAvailable,omitempty"`
	WarrantyStatus    string `bson:"warranty_status,omitempty" json:"warrantyStatus,omitempty"`
	ExchangePossible  string `bson:"exchange_possible,omitempty" json:"exchangePossible,omitempty"`
}

// ListingDetails is the category-specific detail bag. At most one variant
// is set; which one is expected to match the listing's main category.
// Alternate-language field names from clients are collapsed to these
// canonical attributes at the HTTP boundary, storage only ever sees this
// shape.
type ListingDetails struct {
	Vehicle  *VehicleDetails  `bson:"vehicle,omitempty" json:"vehicleDetails,omitempty"`
	Property *PropertyDetails `bson:"property,omitempty" json:"propertyDetails,omitempty"`
	UsedItem *UsedItemDetails `bson:"used_item,omitempty" json:"usedItemDetails,omitempty"`
}

// Variant reports which detail variant is set, or "" for none.
func (d ListingDetails) Variant() string {
	switch {
	case d.Vehicle != nil:
		return "vehicle"
	case d.Property != nil:
		return "property"
	case d.UsedItem != nil:
		return "used_item"
	}
	return ""
}

type Contact struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type Listing struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Price        float64        `json:"price"`
	PriceType    PriceType      `json:"priceType"`
	Location     string         `json:"location"`
	Images       []string       `json:"images"`
	MainCategory string         `json:"mainCategory"`
	SubCategory  string         `json:"subCategory"`
	Details      ListingDetails `json:"details"`
	Contact      Contact        `json:"contact"`
	UserID       string         `json:"userId"`
	Status       ListingStatus  `json:"status"`

	// Promotion state. Featured is true iff PromotionType != none.
	// A nil FeaturedUntil means the promotion never expires.
	Featured      bool          `json:"featured"`
	FeaturedUntil *time.Time    `json:"featuredUntil"`
	PromotionType PromotionType `json:"promotionType"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PromotedAt reports whether the listing holds a live promoted slot at the
// given instant.
func (l *Listing) PromotedAt(now time.Time) bool {
	if l.Status != StatusActive || !l.Featured || l.PromotionType == PromotionNone {
		return false
	}
	return l.FeaturedUntil == nil || !l.FeaturedUntil.Before(now)
}
