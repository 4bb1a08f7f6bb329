package likes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swapyard/pkg/listings"
	"swapyard/pkg/matches"
	"swapyard/pkg/notifications"
	"swapyard/pkg/push"
	"swapyard/pkg/users"
)

type mockLikeRepository struct {
	mock.Mock
}

func (m *mockLikeRepository) CreateLike(ctx context.Context, l Like) (Like, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(Like), args.Error(1)
}

func (m *mockLikeRepository) DeleteLike(ctx context.Context, userUUID, listingID string) error {
	args := m.Called(ctx, userUUID, listingID)
	return args.Error(0)
}

func (m *mockLikeRepository) ListLikesByUser(ctx context.Context, userUUID string) ([]Like, error) {
	args := m.Called(ctx, userUUID)
	return args.Get(0).([]Like), args.Error(1)
}

func (m *mockLikeRepository) FindReciprocalLike(ctx context.Context, ownerUUID, likerUUID string) (Like, error) {
	args := m.Called(ctx, ownerUUID, likerUUID)
	return args.Get(0).(Like), args.Error(1)
}

type mockListingRepository struct {
	mock.Mock
}

func (m *mockListingRepository) CreateListing(ctx context.Context, input listings.Listing) (listings.Listing, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(listings.Listing), args.Error(1)
}

func (m *mockListingRepository) UpdateListing(ctx context.Context, input listings.Listing) (listings.Listing, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(listings.Listing), args.Error(1)
}

func (m *mockListingRepository) DeactivateListing(ctx context.Context, id, ownerUUID string) error {
	args := m.Called(ctx, id, ownerUUID)
	return args.Error(0)
}

func (m *mockListingRepository) GetListingByID(ctx context.Context, id string) (listings.Listing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(listings.Listing), args.Error(1)
}

func (m *mockListingRepository) ListListings(ctx context.Context, filters listings.ListingFilters, limit, offset int) ([]listings.Listing, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	return args.Get(0).([]listings.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *mockListingRepository) ListListingsByUser(ctx context.Context, userUUID string, limit, offset int) ([]listings.Listing, int64, error) {
	args := m.Called(ctx, userUUID, limit, offset)
	return args.Get(0).([]listings.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *mockListingRepository) ListActiveListings(ctx context.Context) ([]listings.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]listings.Listing), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, u users.User, passwordHash string) (users.User, error) {
	args := m.Called(ctx, u, passwordHash)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, u users.User) (users.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func (m *mockUserRepository) GetUserByUUID(ctx context.Context, uuid string) (users.User, error) {
	args := m.Called(ctx, uuid)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *mockUserRepository) ReviveUserByEmail(ctx context.Context, email string, u users.User, passwordHash string) (users.User, error) {
	args := m.Called(ctx, email, u, passwordHash)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *mockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]users.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]users.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) ListAllUsers(ctx context.Context) ([]users.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]users.User), args.Error(1)
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

type mockMatchRepository struct {
	mock.Mock
}

func (m *mockMatchRepository) CreateMatch(ctx context.Context, match matches.Match) (matches.Match, error) {
	args := m.Called(ctx, match)
	return args.Get(0).(matches.Match), args.Error(1)
}

func (m *mockMatchRepository) GetMatchByID(ctx context.Context, id string) (matches.Match, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(matches.Match), args.Error(1)
}

func (m *mockMatchRepository) ListMatchesForUser(ctx context.Context, userUUID string) ([]matches.Match, error) {
	args := m.Called(ctx, userUUID)
	return args.Get(0).([]matches.Match), args.Error(1)
}

func (m *mockMatchRepository) DeleteMatch(ctx context.Context, id, userUUID string) error {
	args := m.Called(ctx, id, userUUID)
	return args.Error(0)
}

func (m *mockMatchRepository) MatchExistsForUsers(ctx context.Context, userA, userB string) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, n notifications.Notification) (notifications.Notification, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(notifications.Notification), args.Error(1)
}

func (m *mockNotifier) ListNotifications(ctx context.Context, recipientUUID string, page, limit int) ([]notifications.Notification, int64, error) {
	args := m.Called(ctx, recipientUUID, page, limit)
	return args.Get(0).([]notifications.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotifier) MarkRead(ctx context.Context, id, recipientUUID string) error {
	args := m.Called(ctx, id, recipientUUID)
	return args.Error(0)
}

func (m *mockNotifier) MarkAllRead(ctx context.Context, recipientUUID string) (int64, error) {
	args := m.Called(ctx, recipientUUID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotifier) UnreadCount(ctx context.Context, recipientUUID string) (int64, error) {
	args := m.Called(ctx, recipientUUID)
	return args.Get(0).(int64), args.Error(1)
}

type mockEmail struct {
	mock.Mock
}

func (m *mockEmail) SendEmail(subject, toEmail, plainTextContent, htmlContent string) error {
	args := m.Called(subject, toEmail, plainTextContent, htmlContent)
	return args.Error(0)
}

type mockPusher struct {
	mock.Mock
}

func (m *mockPusher) PublishToUser(ctx context.Context, userUUID string, payload push.Payload) int {
	args := m.Called(ctx, userUUID, payload)
	return args.Int(0)
}

type likeServiceFixture struct {
	repo     *mockLikeRepository
	listings *mockListingRepository
	users    *mockUserRepository
	matches  *mockMatchRepository
	notifier *mockNotifier
	email    *mockEmail
	pusher   *mockPusher
	svc      LikeService
}

func newLikeServiceFixture() *likeServiceFixture {
	f := &likeServiceFixture{
		repo:     new(mockLikeRepository),
		listings: new(mockListingRepository),
		users:    new(mockUserRepository),
		matches:  new(mockMatchRepository),
		notifier: new(mockNotifier),
		email:    new(mockEmail),
		pusher:   new(mockPusher),
	}
	f.svc = NewLikeService(f.repo, f.listings, f.users, f.matches, f.notifier, f.email, f.pusher)
	return f
}

func TestLikeListing_SelfLikeRejected(t *testing.T) {
	f := newLikeServiceFixture()

	f.listings.On("GetListingByID", mock.Anything, "l1").
		Return(listings.Listing{ID: "l1", UserUUID: "owner", IsActive: true}, nil)

	_, err := f.svc.LikeListing(context.Background(), "owner", "l1")
	require.ErrorIs(t, err, ErrSelfLike)
	f.repo.AssertNotCalled(t, "CreateLike", mock.Anything, mock.Anything)
}

func TestLikeListing_InactiveListingRejected(t *testing.T) {
	f := newLikeServiceFixture()

	f.listings.On("GetListingByID", mock.Anything, "l1").
		Return(listings.Listing{ID: "l1", UserUUID: "owner", IsActive: false}, nil)

	_, err := f.svc.LikeListing(context.Background(), "liker", "l1")
	require.ErrorIs(t, err, listings.ErrListingNotFound)
}

func TestLikeListing_NotifiesOwnerOnAllChannels(t *testing.T) {
	f := newLikeServiceFixture()

	f.listings.On("GetListingByID", mock.Anything, "l1").
		Return(listings.Listing{ID: "l1", UserUUID: "owner", Title: "Lake cabin", IsActive: true}, nil)
	stored := Like{ID: "like1", UserUUID: "liker", ListingID: "l1", OwnerUUID: "owner"}
	f.repo.On("CreateLike", mock.Anything, mock.Anything).Return(stored, nil)

	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n notifications.Notification) bool {
		return n.RecipientUUID == "owner" && n.Type == notifications.TypeLike
	})).Return(notifications.Notification{ID: "n1"}, nil)
	f.pusher.On("PublishToUser", mock.Anything, "owner", mock.Anything).Return(1)
	f.users.On("GetUserByUUID", mock.Anything, "owner").
		Return(users.User{UUID: "owner", Email: "owner@example.com"}, nil)
	f.email.On("SendEmail", mock.Anything, "owner@example.com", mock.Anything, mock.Anything).Return(nil)

	f.repo.On("FindReciprocalLike", mock.Anything, "owner", "liker").Return(Like{}, ErrLikeNotFound)

	result, err := f.svc.LikeListing(context.Background(), "liker", "l1")
	require.NoError(t, err)
	require.Equal(t, "like1", result.Like.ID)
	require.Nil(t, result.Match)

	f.notifier.AssertExpectations(t)
	f.pusher.AssertExpectations(t)
	f.email.AssertExpectations(t)
}

func TestLikeListing_ReciprocalLikeCreatesMatch(t *testing.T) {
	f := newLikeServiceFixture()

	f.listings.On("GetListingByID", mock.Anything, "l1").
		Return(listings.Listing{ID: "l1", UserUUID: "owner", Title: "City flat", IsActive: true}, nil)
	stored := Like{ID: "like1", UserUUID: "liker", ListingID: "l1", OwnerUUID: "owner"}
	f.repo.On("CreateLike", mock.Anything, mock.Anything).Return(stored, nil)

	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(notifications.Notification{}, nil)
	f.pusher.On("PublishToUser", mock.Anything, mock.Anything, mock.Anything).Return(1)
	f.users.On("GetUserByUUID", mock.Anything, "owner").
		Return(users.User{UUID: "owner", Email: "owner@example.com"}, nil)
	f.email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	reciprocal := Like{ID: "like0", UserUUID: "owner", ListingID: "liker-listing", OwnerUUID: "liker"}
	f.repo.On("FindReciprocalLike", mock.Anything, "owner", "liker").Return(reciprocal, nil)
	f.matches.On("MatchExistsForUsers", mock.Anything, "liker", "owner").Return(false, nil)
	f.matches.On("CreateMatch", mock.Anything, mock.MatchedBy(func(m matches.Match) bool {
		return m.UserAUUID == "liker" && m.UserBUUID == "owner" &&
			m.ListingAID == "liker-listing" && m.ListingBID == "l1"
	})).Return(matches.Match{ID: "m1", UserAUUID: "liker", UserBUUID: "owner"}, nil)

	result, err := f.svc.LikeListing(context.Background(), "liker", "l1")
	require.NoError(t, err)
	require.NotNil(t, result.Match)
	require.Equal(t, "m1", result.Match.ID)

	f.matches.AssertExpectations(t)
	// like notification to owner plus match notifications to both sides
	f.notifier.AssertNumberOfCalls(t, "Notify", 3)
}

func TestLikeListing_ExistingMatchNotDuplicated(t *testing.T) {
	f := newLikeServiceFixture()

	f.listings.On("GetListingByID", mock.Anything, "l1").
		Return(listings.Listing{ID: "l1", UserUUID: "owner", IsActive: true}, nil)
	f.repo.On("CreateLike", mock.Anything, mock.Anything).
		Return(Like{ID: "like1", UserUUID: "liker", ListingID: "l1", OwnerUUID: "owner"}, nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(notifications.Notification{}, nil)
	f.pusher.On("PublishToUser", mock.Anything, mock.Anything, mock.Anything).Return(1)
	f.users.On("GetUserByUUID", mock.Anything, "owner").Return(users.User{Email: "o@example.com"}, nil)
	f.email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	f.repo.On("FindReciprocalLike", mock.Anything, "owner", "liker").
		Return(Like{ID: "like0", UserUUID: "owner", ListingID: "x", OwnerUUID: "liker"}, nil)
	f.matches.On("MatchExistsForUsers", mock.Anything, "liker", "owner").Return(true, nil)

	result, err := f.svc.LikeListing(context.Background(), "liker", "l1")
	require.NoError(t, err)
	require.Nil(t, result.Match)
	f.matches.AssertNotCalled(t, "CreateMatch", mock.Anything, mock.Anything)
}

func TestLikeListing_DuplicateLike(t *testing.T) {
	f := newLikeServiceFixture()

	f.listings.On("GetListingByID", mock.Anything, "l1").
		Return(listings.Listing{ID: "l1", UserUUID: "owner", IsActive: true}, nil)
	f.repo.On("CreateLike", mock.Anything, mock.Anything).Return(Like{}, ErrAlreadyLiked)

	_, err := f.svc.LikeListing(context.Background(), "liker", "l1")
	require.ErrorIs(t, err, ErrAlreadyLiked)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestLikeListing_FanOutFailuresDoNotFailLike(t *testing.T) {
	f := newLikeServiceFixture()

	f.listings.On("GetListingByID", mock.Anything, "l1").
		Return(listings.Listing{ID: "l1", UserUUID: "owner", IsActive: true}, nil)
	f.repo.On("CreateLike", mock.Anything, mock.Anything).
		Return(Like{ID: "like1", UserUUID: "liker", ListingID: "l1", OwnerUUID: "owner"}, nil)

	f.notifier.On("Notify", mock.Anything, mock.Anything).
		Return(notifications.Notification{}, errors.New("db down"))
	f.pusher.On("PublishToUser", mock.Anything, mock.Anything, mock.Anything).Return(0)
	f.users.On("GetUserByUUID", mock.Anything, "owner").
		Return(users.User{}, errors.New("db down"))
	f.repo.On("FindReciprocalLike", mock.Anything, "owner", "liker").Return(Like{}, ErrLikeNotFound)

	result, err := f.svc.LikeListing(context.Background(), "liker", "l1")
	require.NoError(t, err)
	require.Equal(t, "like1", result.Like.ID)
}

func TestUnlikeListing_Passthrough(t *testing.T) {
	f := newLikeServiceFixture()
	f.repo.On("DeleteLike", mock.Anything, "liker", "l1").Return(ErrLikeNotFound)

	err := f.svc.UnlikeListing(context.Background(), "liker", "l1")
	require.ErrorIs(t, err, ErrLikeNotFound)
}
