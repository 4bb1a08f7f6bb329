package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotificationRepository struct {
	mock.Mock
}

func (m *mockNotificationRepository) CreateNotification(ctx context.Context, n Notification) (Notification, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(Notification), args.Error(1)
}

func (m *mockNotificationRepository) ListByRecipient(ctx context.Context, recipientUUID string, limit, offset int) ([]Notification, int64, error) {
	args := m.Called(ctx, recipientUUID, limit, offset)
	return args.Get(0).([]Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, id, recipientUUID string) error {
	args := m.Called(ctx, id, recipientUUID)
	return args.Error(0)
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, recipientUUID string) (int64, error) {
	args := m.Called(ctx, recipientUUID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepository) UnreadCount(ctx context.Context, recipientUUID string) (int64, error) {
	args := m.Called(ctx, recipientUUID)
	return args.Get(0).(int64), args.Error(1)
}

type mockRealtime struct {
	mock.Mock
}

func (m *mockRealtime) IsOnline(userUUID string) bool {
	args := m.Called(userUUID)
	return args.Bool(0)
}

func (m *mockRealtime) SendToUser(userUUID string, payload interface{}) error {
	args := m.Called(userUUID, payload)
	return args.Error(0)
}

func TestNotify_PushesToOnlineRecipient(t *testing.T) {
	repo := new(mockNotificationRepository)
	rt := new(mockRealtime)
	svc := NewNotificationService(repo, rt)

	input := Notification{RecipientUUID: "user1", Type: TypeLike, Message: "someone liked your listing"}
	stored := input
	stored.ID = "n1"

	repo.On("CreateNotification", mock.Anything, input).Return(stored, nil)
	rt.On("IsOnline", "user1").Return(true)
	rt.On("SendToUser", "user1", NotificationEvent{EventType: "notification", Notification: stored}).Return(nil)

	got, err := svc.Notify(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "n1", got.ID)

	repo.AssertExpectations(t)
	rt.AssertExpectations(t)
}

func TestNotify_SkipsPushWhenOffline(t *testing.T) {
	repo := new(mockNotificationRepository)
	rt := new(mockRealtime)
	svc := NewNotificationService(repo, rt)

	input := Notification{RecipientUUID: "user1", Type: TypeMatch, Message: "you have a new match"}
	stored := input
	stored.ID = "n2"

	repo.On("CreateNotification", mock.Anything, input).Return(stored, nil)
	rt.On("IsOnline", "user1").Return(false)

	_, err := svc.Notify(context.Background(), input)
	require.NoError(t, err)

	rt.AssertNotCalled(t, "SendToUser", mock.Anything, mock.Anything)
}

func TestNotify_DeliveryFailureDoesNotFailCaller(t *testing.T) {
	repo := new(mockNotificationRepository)
	rt := new(mockRealtime)
	svc := NewNotificationService(repo, rt)

	input := Notification{RecipientUUID: "user1", Type: TypeLike, Message: "hi"}
	stored := input
	stored.ID = "n3"

	repo.On("CreateNotification", mock.Anything, input).Return(stored, nil)
	rt.On("IsOnline", "user1").Return(true)
	rt.On("SendToUser", "user1", mock.Anything).Return(errors.New("queue full"))

	got, err := svc.Notify(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "n3", got.ID)
}

func TestNotify_RepoErrorSurfaces(t *testing.T) {
	repo := new(mockNotificationRepository)
	rt := new(mockRealtime)
	svc := NewNotificationService(repo, rt)

	input := Notification{RecipientUUID: "user1", Type: TypeLike}
	repo.On("CreateNotification", mock.Anything, input).Return(Notification{}, errors.New("db down"))

	_, err := svc.Notify(context.Background(), input)
	require.Error(t, err)
	rt.AssertNotCalled(t, "IsOnline", mock.Anything)
}

func TestListNotifications_PaginationDefaults(t *testing.T) {
	repo := new(mockNotificationRepository)
	svc := NewNotificationService(repo, nil)

	repo.On("ListByRecipient", mock.Anything, "user1", 20, 0).Return([]Notification{}, int64(0), nil)

	_, _, err := svc.ListNotifications(context.Background(), "user1", 0, 0)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
