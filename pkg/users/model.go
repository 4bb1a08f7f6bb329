package users

import (
	"time"

	"swapyard/pkg/geo"
)

type User struct {
	UUID            string    `json:"uuid"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Bio             string    `json:"bio,omitempty"`
	Location        string    `json:"location,omitempty"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	ProfilePhotoURL string    `json:"profile_photo_url,omitempty"`
	Verified        bool      `json:"verified"`
	IsPremium       bool      `json:"is_premium"`
	CreatedAt       time.Time `json:"created_at"`
}

// Coordinates returns the user's last known position, used as the feed's
// fallback reference point when the filter has no center.
func (u User) Coordinates() (geo.Point, bool) {
	if u.Latitude == nil || u.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *u.Latitude, Longitude: *u.Longitude}, true
}

type UserList struct {
	Items []User `json:"items"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}
