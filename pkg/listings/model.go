package listings

import (
	"time"

	"swapyard/pkg/geo"
)

// Listing types and swap modes accepted by the API.
const (
	TypeHome   = "home"
	TypeCar    = "car"
	TypeOthers = "others"

	SwapPermanent = "permanent"
	SwapTemporary = "temporary"
)

type Listing struct {
	ID          string    `json:"id"`
	UserUUID    string    `json:"user_uuid"`
	Type        string    `json:"type"`
	SwapType    string    `json:"swap_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Price       *int64    `json:"price,omitempty"`
	Images      []string  `json:"images"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Coordinates returns the listing's position and whether it has one. A
// listing carries either both latitude and longitude or neither.
func (l Listing) Coordinates() (geo.Point, bool) {
	if l.Latitude == nil || l.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *l.Latitude, Longitude: *l.Longitude}, true
}

// PriceOrZero treats an absent price as 0 for filtering and cost sorts.
func (l Listing) PriceOrZero() int64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}

type ListingList struct {
	Items []Listing `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}
