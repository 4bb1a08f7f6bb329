package matches

import (
	"context"

	"swapyard/pkg/listings"
)

// MatchDetail is a match joined with its listings. A side whose listing has
// been deactivated or removed since matching comes back nil and the match is
// flagged stale so the client can offer to clean it up.
type MatchDetail struct {
	Match    Match             `json:"match"`
	ListingA *listings.Listing `json:"listing_a,omitempty"`
	ListingB *listings.Listing `json:"listing_b,omitempty"`
	Stale    bool              `json:"stale"`
}

type MatchService interface {
	CreateMatch(ctx context.Context, m Match) (Match, error)
	GetMatch(ctx context.Context, id string) (Match, error)
	ListMatches(ctx context.Context, userUUID string) ([]MatchDetail, error)
	DeleteMatch(ctx context.Context, id, userUUID string) error
}

type matchService struct {
	repo     MatchRepository
	listings listings.ListingRepository
}

func NewMatchService(repo MatchRepository, listingRepo listings.ListingRepository) MatchService {
	return &matchService{repo: repo, listings: listingRepo}
}

func (s *matchService) CreateMatch(ctx context.Context, m Match) (Match, error) {
	return s.repo.CreateMatch(ctx, m)
}

func (s *matchService) GetMatch(ctx context.Context, id string) (Match, error) {
	return s.repo.GetMatchByID(ctx, id)
}

func (s *matchService) ListMatches(ctx context.Context, userUUID string) ([]MatchDetail, error) {
	items, err := s.repo.ListMatchesForUser(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	result := make([]MatchDetail, 0, len(items))
	for _, m := range items {
		detail := MatchDetail{Match: m}
		detail.ListingA = s.lookupListing(ctx, m.ListingAID)
		detail.ListingB = s.lookupListing(ctx, m.ListingBID)
		detail.Stale = detail.ListingA == nil || detail.ListingB == nil
		result = append(result, detail)
	}
	return result, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id, userUUID string) error {
	return s.repo.DeleteMatch(ctx, id, userUUID)
}

// lookupListing treats any failed or inactive lookup as a dangling side.
func (s *matchService) lookupListing(ctx context.Context, id string) *listings.Listing {
	l, err := s.listings.GetListingByID(ctx, id)
	if err != nil || !l.IsActive {
		return nil
	}
	return &l
}
