// Package geo provides the geodesy primitives used by the listing feed:
// haversine distances, unit conversion and display formatting.
package geo

import (
	"fmt"
	"math"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	kmPerMile = 0.621371
)

// Point is a WGS84 coordinate pair in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Distance returns the great-circle distance between a and b in kilometers.
// It is pure and symmetric: Distance(a, b) == Distance(b, a).
func Distance(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// ToMiles converts kilometers to miles.
func ToMiles(km float64) float64 {
	return km * kmPerMile
}

// FormatDistance renders a distance with one decimal digit and a unit label,
// e.g. "2.5 km" or "1.6 miles". Unit must be "km" or "miles"; anything else
// is treated as kilometers.
func FormatDistance(km float64, unit string) string {
	if unit == "miles" {
		return fmt.Sprintf("%.1f miles", ToMiles(km))
	}
	return fmt.Sprintf("%.1f km", km)
}
