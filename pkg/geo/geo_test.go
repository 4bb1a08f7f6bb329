package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	cairo      = Point{Latitude: 30.0444, Longitude: 31.2357}
	alexandria = Point{Latitude: 31.2001, Longitude: 29.9187}
)

func TestDistance_ZeroAtIdentity(t *testing.T) {
	points := []Point{
		{},
		cairo,
		{Latitude: -33.8688, Longitude: 151.2093},
	}
	for _, p := range points {
		require.Zero(t, Distance(p, p))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	d1 := Distance(cairo, alexandria)
	d2 := Distance(alexandria, cairo)
	require.InDelta(t, d1, d2, 1e-9)
}

func TestDistance_CairoAlexandria(t *testing.T) {
	d := Distance(cairo, alexandria)
	require.Greater(t, d, 181.0)
	require.Less(t, d, 183.0)
}

func TestToMiles(t *testing.T) {
	require.InDelta(t, 0.621371, ToMiles(1), 1e-9)
	require.InDelta(t, 62.1371, ToMiles(100), 1e-6)
}

func TestFormatDistance(t *testing.T) {
	require.Equal(t, "2.5 km", FormatDistance(2.5, "km"))
	require.Equal(t, "1.6 miles", FormatDistance(2.5, "miles"))
	// Unknown unit falls back to kilometers.
	require.Equal(t, "2.5 km", FormatDistance(2.5, ""))
}
