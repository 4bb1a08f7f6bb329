package listings

import (
	"context"

	"github.com/google/uuid"
)

type ListingService interface {
	CreateListing(ctx context.Context, input Listing) (Listing, error)
	UpdateListing(ctx context.Context, input Listing) (Listing, error)
	DeactivateListing(ctx context.Context, id, ownerUUID string) error
	GetListingByID(ctx context.Context, id string) (Listing, error)
	ListListings(ctx context.Context, filters ListingFilters, page, limit int) ([]Listing, int64, error)
	ListListingsByUser(ctx context.Context, userUUID string, page, limit int) ([]Listing, int64, error)
}

type listingService struct {
	repo ListingRepository
}

func NewListingService(repo ListingRepository) ListingService {
	return &listingService{repo: repo}
}

func (s *listingService) CreateListing(ctx context.Context, input Listing) (Listing, error) {
	if input.ID == "" {
		input.ID = uuid.New().String()
	}
	if input.SwapType == "" {
		input.SwapType = SwapPermanent
	}
	input.IsActive = true
	return s.repo.CreateListing(ctx, input)
}

func (s *listingService) UpdateListing(ctx context.Context, input Listing) (Listing, error) {
	return s.repo.UpdateListing(ctx, input)
}

func (s *listingService) DeactivateListing(ctx context.Context, id, ownerUUID string) error {
	return s.repo.DeactivateListing(ctx, id, ownerUUID)
}

func (s *listingService) GetListingByID(ctx context.Context, id string) (Listing, error) {
	return s.repo.GetListingByID(ctx, id)
}

func (s *listingService) ListListings(ctx context.Context, filters ListingFilters, page, limit int) ([]Listing, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListListings(ctx, filters, limit, offset)
}

func (s *listingService) ListListingsByUser(ctx context.Context, userUUID string, page, limit int) ([]Listing, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListListingsByUser(ctx, userUUID, limit, offset)
}
