package handler

import (
	"encoding/json"
	"strings"

	"github.com/pazarlio/marketplace/internal/listing/domain"
)

// Clients may submit property and used-item detail fields under their
// Arabic names. Those are aliases of the canonical attributes, resolved
// here at the decode boundary; storage only ever sees canonical names.
var propertyFieldAliases = map[string]string{
	"نوع_العقار":   "propertyType",
	"نوع_الإعلان":  "listingType",
	"المساحة":      "area",
	"عدد_الغرف":    "roomCount",
	"عمر_البناء":   "buildingAge",
	"الطابق":       "floor",
	"عدد_الطوابق":  "totalFloors",
	"التدفئة":      "heating",
	"مفروش":        "furnished",
	"شرفة":         "balcony",
	"مصعد":         "elevator",
	"موقف_سيارات":  "parking",
}

var usedItemFieldAliases = map[string]string{
	"الفئة_الرئيسية":    "mainCategory",
	"الفئة_الفرعية":     "subCategory",
	"حالة_المنتج":       "itemCondition",
	"العلامة_التجارية":  "brand",
	"الموديل":           "model",
	"الشحن_متاح":        "shippingAvailable",
	"الضمان":            "warrantyStatus",
	"إمكانية_المقايضة":  "exchangePossible",
}

// canonicalize rewrites aliased keys to their canonical names. A canonical
// key already present wins over its alias.
func canonicalize(data []byte, aliases map[string]string) ([]byte, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for alias, canonical := range aliases {
		v, ok := raw[alias]
		if !ok {
			continue
		}
		if _, exists := raw[canonical]; !exists {
			raw[canonical] = v
		}
		delete(raw, alias)
	}
	return json.Marshal(raw)
}

// flexBool accepts JSON booleans as well as the yes/no strings the
// bilingual clients send.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "evet", "نعم", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}

type propertyDetailsDTO struct {
	PropertyType string   `json:"propertyType"`
	ListingType  string   `json:"listingType"`
	Area         int      `json:"area"`
	RoomCount    string   `json:"roomCount"`
	BuildingAge  string   `json:"buildingAge"`
	Floor        int      `json:"floor"`
	TotalFloors  int      `json:"totalFloors"`
	Heating      string   `json:"heating"`
	Furnished    string   `json:"furnished"`
	Balcony      flexBool `json:"balcony"`
	Elevator     flexBool `json:"elevator"`
	Parking      flexBool `json:"parking"`
}

func (d *propertyDetailsDTO) UnmarshalJSON(data []byte) error {
	canonical, err := canonicalize(data, propertyFieldAliases)
	if err != nil {
		return err
	}
	type plain propertyDetailsDTO
	return json.Unmarshal(canonical, (*plain)(d))
}

func (d *propertyDetailsDTO) toDomain() *domain.PropertyDetails {
	return &domain.PropertyDetails{
		PropertyType: d.PropertyType,
		ListingType:  d.ListingType,
		Area:         d.Area,
		RoomCount:    d.RoomCount,
		BuildingAge:  d.BuildingAge,
		Floor:        d.Floor,
		TotalFloors:  d.TotalFloors,
		Heating:      d.Heating,
		Furnished:    d.Furnished,
		Balcony:      bool(d.Balcony),
		Elevator:     bool(d.Elevator),
		Parking:      bool(d.Parking),
	}
}

type usedItemDetailsDTO struct {
	MainCategory      string `json:"mainCategory"`
	SubCategory       string `json:"subCategory"`
	ItemCondition     string `json:"itemCondition"`
	Brand             string `json:"brand"`
	Model             string `json:"model"`
	ShippingAvailable string `json:"shippingAvailable"`
	WarrantyStatus    string `json:"warrantyStatus"`
	ExchangePossible  string `json:"exchangePossible"`
}

func (d *usedItemDetailsDTO) UnmarshalJSON(data []byte) error {
	canonical, err := canonicalize(data, usedItemFieldAliases)
	if err != nil {
		return err
	}
	type plain usedItemDetailsDTO
	return json.Unmarshal(canonical, (*plain)(d))
}

func (d *usedItemDetailsDTO) toDomain() *domain.UsedItemDetails {
	return &domain.UsedItemDetails{
		MainCategory:      d.MainCategory,
		SubCategory:       d.SubCategory,
		ItemCondition:     d.ItemCondition,
		Brand:             d.Brand,
		Model:             d.Model,
		ShippingAvailable: d.ShippingAvailable,
		WarrantyStatus:    d.WarrantyStatus,
		ExchangePossible:  d.ExchangePossible,
	}
}

type listingDetailsPayload struct {
	VehicleDetails  *domain.VehicleDetails `json:"vehicleDetails"`
	PropertyDetails *propertyDetailsDTO    `json:"propertyDetails"`
	UsedItemDetails *usedItemDetailsDTO    `json:"usedItemDetails"`
}

// toDomain collapses the payload to the tagged detail union. The variants
// are mutually exclusive, more than one is invalid listing data.
func (p *listingDetailsPayload) toDomain() (domain.ListingDetails, error) {
	var details domain.ListingDetails
	set := 0
	if p.VehicleDetails != nil {
		details.Vehicle = p.VehicleDetails
		set++
	}
	if p.PropertyDetails != nil {
		details.Property = p.PropertyDetails.toDomain()
		set++
	}
	if p.UsedItemDetails != nil {
		details.UsedItem = p.UsedItemDetails.toDomain()
		set++
	}
	if set > 1 {
		return domain.ListingDetails{}, domain.ErrInvalidListingData
	}
	return details, nil
}

func (p *listingDetailsPayload) present() bool {
	return p.VehicleDetails != nil || p.PropertyDetails != nil || p.UsedItemDetails != nil
}

type createListingRequest struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Price        float64          `json:"price"`
	PriceType    domain.PriceType `json:"priceType"`
	Location     string           `json:"location"`
	Images       []string         `json:"images"`
	MainCategory string           `json:"mainCategory"`
	SubCategory  string           `json:"subCategory"`
	Contact      domain.Contact   `json:"contact"`
	listingDetailsPayload
}

type updateListingRequest struct {
	Title        *string               `json:"title"`
	Description  *string               `json:"description"`
	Price        *float64              `json:"price"`
	PriceType    *domain.PriceType     `json:"priceType"`
	Location     *string               `json:"location"`
	Images       *[]string             `json:"images"`
	MainCategory *string               `json:"mainCategory"`
	SubCategory  *string               `json:"subCategory"`
	Contact      *domain.Contact       `json:"contact"`
	Status       *domain.ListingStatus `json:"status"`
	listingDetailsPayload
}

type promoteRequest struct {
	PromotionType domain.PromotionType `json:"promotionType"`
	Duration      int                  `json:"duration"`
}
