package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swapyard/pkg/geo"
	"swapyard/pkg/listings"
	"swapyard/pkg/users"
)

type mockListingRepository struct {
	mock.Mock
}

func (m *mockListingRepository) CreateListing(ctx context.Context, input listings.Listing) (listings.Listing, error) {
	args := m.Called(ctx, input)
	l, _ := args.Get(0).(listings.Listing)
	return l, args.Error(1)
}

func (m *mockListingRepository) UpdateListing(ctx context.Context, input listings.Listing) (listings.Listing, error) {
	args := m.Called(ctx, input)
	l, _ := args.Get(0).(listings.Listing)
	return l, args.Error(1)
}

func (m *mockListingRepository) DeactivateListing(ctx context.Context, id, ownerUUID string) error {
	args := m.Called(ctx, id, ownerUUID)
	return args.Error(0)
}

func (m *mockListingRepository) GetListingByID(ctx context.Context, id string) (listings.Listing, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(listings.Listing)
	return l, args.Error(1)
}

func (m *mockListingRepository) ListListings(ctx context.Context, filters listings.ListingFilters, limit, offset int) ([]listings.Listing, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	list, _ := args.Get(0).([]listings.Listing)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockListingRepository) ListListingsByUser(ctx context.Context, userUUID string, limit, offset int) ([]listings.Listing, int64, error) {
	args := m.Called(ctx, userUUID, limit, offset)
	list, _ := args.Get(0).([]listings.Listing)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockListingRepository) ListActiveListings(ctx context.Context) ([]listings.Listing, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]listings.Listing)
	return list, args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, u users.User, passwordHash string) (users.User, error) {
	args := m.Called(ctx, u, passwordHash)
	out, _ := args.Get(0).(users.User)
	return out, args.Error(1)
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, u users.User) (users.User, error) {
	args := m.Called(ctx, u)
	out, _ := args.Get(0).(users.User)
	return out, args.Error(1)
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func (m *mockUserRepository) GetUserByUUID(ctx context.Context, uuid string) (users.User, error) {
	args := m.Called(ctx, uuid)
	out, _ := args.Get(0).(users.User)
	return out, args.Error(1)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	args := m.Called(ctx, email)
	out, _ := args.Get(0).(users.User)
	return out, args.Error(1)
}

func (m *mockUserRepository) ReviveUserByEmail(ctx context.Context, email string, u users.User, passwordHash string) (users.User, error) {
	args := m.Called(ctx, email, u, passwordHash)
	out, _ := args.Get(0).(users.User)
	return out, args.Error(1)
}

func (m *mockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]users.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]users.User)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) ListAllUsers(ctx context.Context) ([]users.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]users.User)
	return list, args.Error(1)
}

func (m *mockUserRepository) GetUserAuthByEmail(ctx context.Context, email string) (string, string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockUserRepository) SetVerified(ctx context.Context, uuid string, verified bool) error {
	args := m.Called(ctx, uuid, verified)
	return args.Error(0)
}

func (m *mockUserRepository) SetPremium(ctx context.Context, uuid, plan string) error {
	args := m.Called(ctx, uuid, plan)
	return args.Error(0)
}

// End-to-end scenario: A (home, 100, at the viewer), B (car, 500, 5 km),
// C (home, 50, 50 km, owned by the viewer). Category home + 10 km radius +
// viewer exclusion + nearest-location returns exactly [A].
func TestFeedService_GetFeed_EndToEnd(t *testing.T) {
	const viewer = "8f14e45f-0000-4000-8000-000000000001"

	viewerLoc := geo.Point{Latitude: 30.0444, Longitude: 31.2357}

	a := makeListing("A", "owner-a", listings.TypeHome, ptr(int64(100)), ptr(30.0444), ptr(31.2357))
	b := makeListing("B", "owner-b", listings.TypeCar, ptr(int64(500)), ptr(30.09), ptr(31.2357)) // ~5 km
	c := makeListing("C", viewer, listings.TypeHome, ptr(int64(50)), ptr(30.49), ptr(31.2357))    // ~50 km

	listingRepo := new(mockListingRepository)
	userRepo := new(mockUserRepository)
	listingRepo.On("ListActiveListings", mock.Anything).Return([]listings.Listing{a, b, c}, nil)
	userRepo.On("ListAllUsers", mock.Anything).Return([]users.User{{UUID: viewer}}, nil)

	service := NewFeedService(listingRepo, userRepo)

	spec := Spec{
		Type:     listings.TypeHome,
		SwapType: FilterAll,
		PriceMax: 1_000_000,
		Center:   &viewerLoc,
		RadiusKm: 10,
	}

	got, err := service.GetFeed(context.Background(), viewer, spec, SortNearestLocation)
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, ids(got))
}

func TestFeedService_GetFeed_FallsBackToViewerLocation(t *testing.T) {
	const viewer = "8f14e45f-0000-4000-8000-000000000002"

	near := makeListing("near", "o1", listings.TypeHome, nil, ptr(30.05), ptr(31.24))
	far := makeListing("far", "o2", listings.TypeHome, nil, ptr(31.2), ptr(29.92))

	listingRepo := new(mockListingRepository)
	userRepo := new(mockUserRepository)
	listingRepo.On("ListActiveListings", mock.Anything).Return([]listings.Listing{far, near}, nil)
	userRepo.On("ListAllUsers", mock.Anything).Return([]users.User{
		{UUID: viewer, Latitude: ptr(30.0444), Longitude: ptr(31.2357)},
	}, nil)

	service := NewFeedService(listingRepo, userRepo)

	got, err := service.GetFeed(context.Background(), viewer, openSpec(), SortNearestLocation)
	require.NoError(t, err)
	require.Equal(t, []string{"near", "far"}, ids(got))
}

func TestFeedService_GetFeed_NoViewer_NoReference(t *testing.T) {
	b := makeListing("b", "o1", listings.TypeHome, nil, ptr(31.2), ptr(29.92))
	a := makeListing("a", "o2", listings.TypeHome, nil, ptr(30.05), ptr(31.24))

	listingRepo := new(mockListingRepository)
	userRepo := new(mockUserRepository)
	listingRepo.On("ListActiveListings", mock.Anything).Return([]listings.Listing{b, a}, nil)
	userRepo.On("ListAllUsers", mock.Anything).Return([]users.User{}, nil)

	service := NewFeedService(listingRepo, userRepo)

	// nearest-location with no reference point at all is the identity.
	got, err := service.GetFeed(context.Background(), "", openSpec(), SortNearestLocation)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, ids(got))
}
