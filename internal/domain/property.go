package domain

import "time"

type PropertyStatus string

const (
	PropertyStatusDraft    PropertyStatus = "DRAFT"
	PropertyStatusActive   PropertyStatus = "ACTIVE"
	PropertyStatusInactive PropertyStatus = "INACTIVE"
	PropertyStatusSold     PropertyStatus = "SOLD"
)

type ListingType string

const (
	ListingTypeRent ListingType = "RENT"
	ListingTypeSale ListingType = "SALE"
)

type Property struct {
	ID           int64          `json:"id"`
	AgentID      int64          `json:"agent_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Location     string         `json:"location"`
	PropertyType string         `json:"property_type"`
	ListingType  ListingType    `json:"listing_type"`
	PriceCents   int64          `json:"price_cents"`
	Beds         int            `json:"beds"`
	Baths        int            `json:"baths"`
	AreaSqm      float64        `json:"area_sqm"`
	Amenities    []string       `json:"amenities"`
	Images       []string       `json:"images"`
	Status       PropertyStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// PropertyFilter narrows catalog listings. Zero values mean "no constraint";
// all set fields are applied together.
type PropertyFilter struct {
	Location      string
	PropertyType  string
	ListingType   ListingType
	MinPriceCents int64
	MaxPriceCents int64
	Status        PropertyStatus
}

func (f PropertyFilter) Empty() bool {
	return f == (PropertyFilter{})
}
