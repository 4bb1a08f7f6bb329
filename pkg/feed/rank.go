package feed

import (
	"math"
	"sort"

	"swapyard/pkg/geo"
	"swapyard/pkg/listings"
	"swapyard/pkg/users"
)

// Sort strategies accepted by the feed.
const (
	SortMostRelevant    = "most-relevant"
	SortHighestCost     = "highest-cost"
	SortLowestCost      = "lowest-cost"
	SortNearestLocation = "nearest-location"
	SortVerifiedFirst   = "verified-first"
)

// Rank returns a new ordering of list according to strategy. The input is
// never mutated. nearest-location without a reference point is an identity
// no-op. An unknown strategy falls back to most-relevant.
func Rank(list []listings.Listing, strategy string, ref *geo.Point, owners []users.User) []listings.Listing {
	out := make([]listings.Listing, len(list))
	copy(out, list)

	switch strategy {
	case SortHighestCost:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PriceOrZero() > out[j].PriceOrZero()
		})

	case SortLowestCost:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PriceOrZero() < out[j].PriceOrZero()
		})

	case SortNearestLocation:
		if ref == nil {
			return out
		}
		sort.SliceStable(out, func(i, j int) bool {
			return distanceOrInf(*ref, out[i]) < distanceOrInf(*ref, out[j])
		})

	case SortVerifiedFirst:
		verified := make(map[string]bool, len(owners))
		for _, u := range owners {
			verified[u.UUID] = u.Verified
		}
		sort.SliceStable(out, func(i, j int) bool {
			return verified[out[i].UserUUID] && !verified[out[j].UserUUID]
		})

	default: // most-relevant: newest first
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

// distanceOrInf sorts listings without coordinates last.
func distanceOrInf(ref geo.Point, l listings.Listing) float64 {
	p, ok := l.Coordinates()
	if !ok {
		return math.Inf(1)
	}
	return geo.Distance(ref, p)
}
