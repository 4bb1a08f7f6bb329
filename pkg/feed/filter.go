// Package feed implements the browse feed: multi-criterion filtering,
// sort strategies and the aggregation that composes them for a viewer.
package feed

import (
	"swapyard/pkg/geo"
	"swapyard/pkg/listings"
)

// FilterAll matches every category or swap mode.
const FilterAll = "all"

// Spec describes the filter applied to the feed. A zero PriceMax disables
// nothing by itself; callers are responsible for sane bounds (malformed
// specs simply produce whatever the predicates yield).
type Spec struct {
	Type     string     `json:"type"`
	SwapType string     `json:"swap_type"`
	PriceMin int64      `json:"price_min"`
	PriceMax int64      `json:"price_max"`
	Center   *geo.Point `json:"center,omitempty"`
	RadiusKm float64    `json:"radius_km"`
}

// Filter returns the subset of list matching spec, excluding listings owned
// by excludeUserID. Predicates are applied in a fixed order: owner exclusion,
// category, swap mode, price range, radius. Relative order of survivors is
// preserved; the input slice is never mutated.
func Filter(list []listings.Listing, spec Spec, excludeUserID string) []listings.Listing {
	out := make([]listings.Listing, 0, len(list))
	for _, l := range list {
		if excludeUserID != "" && l.UserUUID == excludeUserID {
			continue
		}
		out = append(out, l)
	}

	if spec.Type != "" && spec.Type != FilterAll {
		out = keep(out, func(l listings.Listing) bool { return l.Type == spec.Type })
	}

	if spec.SwapType != "" && spec.SwapType != FilterAll {
		out = keep(out, func(l listings.Listing) bool { return l.SwapType == spec.SwapType })
	}

	out = keep(out, func(l listings.Listing) bool {
		price := l.PriceOrZero()
		return price >= spec.PriceMin && price <= spec.PriceMax
	})

	if spec.Center != nil {
		out = filterRadius(out, *spec.Center, spec.RadiusKm)
	}

	return out
}

func keep(list []listings.Listing, pred func(listings.Listing) bool) []listings.Listing {
	out := list[:0]
	for _, l := range list {
		if pred(l) {
			out = append(out, l)
		}
	}
	return out
}

// filterRadius drops listings lacking coordinates, then keeps those within
// radiusKm of center. Candidates are pre-selected with an R-tree bounding
// box; the index confirms exact haversine distance for each hit.
func filterRadius(list []listings.Listing, center geo.Point, radiusKm float64) []listings.Listing {
	ix := geo.NewIndex()
	for _, l := range list {
		if p, ok := l.Coordinates(); ok {
			ix.Insert(geo.IndexedPoint{ID: l.ID, Point: p})
		}
	}

	hits := ix.SearchRadius(center, radiusKm)

	out := list[:0]
	for _, l := range list {
		if hits[l.ID] {
			out = append(out, l)
		}
	}
	return out
}
