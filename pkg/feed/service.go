package feed

import (
	"context"

	"swapyard/pkg/listings"
	"swapyard/pkg/users"
)

type FeedService interface {
	GetFeed(ctx context.Context, viewerUUID string, spec Spec, strategy string) ([]listings.Listing, error)
}

type feedService struct {
	listingRepo listings.ListingRepository
	userRepo    users.UserRepository
}

func NewFeedService(listingRepo listings.ListingRepository, userRepo users.UserRepository) FeedService {
	return &feedService{listingRepo: listingRepo, userRepo: userRepo}
}

// GetFeed loads the active listing collection, filters it for the viewer and
// ranks the survivors. The reference point for distance sorting is the
// filter's center when given, else the viewer's stored coordinates, else
// absent. Recomputed on every call; no caching.
func (s *feedService) GetFeed(ctx context.Context, viewerUUID string, spec Spec, strategy string) ([]listings.Listing, error) {
	all, err := s.listingRepo.ListActiveListings(ctx)
	if err != nil {
		return nil, err
	}

	owners, err := s.userRepo.ListAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	filtered := Filter(all, spec, viewerUUID)

	ref := spec.Center
	if ref == nil && viewerUUID != "" {
		for _, u := range owners {
			if u.UUID != viewerUUID {
				continue
			}
			if p, ok := u.Coordinates(); ok {
				ref = &p
			}
			break
		}
	}

	return Rank(filtered, strategy, ref, owners), nil
}
