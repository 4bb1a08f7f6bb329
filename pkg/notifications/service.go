package notifications

import (
	"context"
	"log"
)

// RealtimePublisher delivers payloads to connected users. Satisfied by the
// chat connection manager.
type RealtimePublisher interface {
	IsOnline(userUUID string) bool
	SendToUser(userUUID string, payload interface{}) error
}

type NotificationService interface {
	Notify(ctx context.Context, n Notification) (Notification, error)
	ListNotifications(ctx context.Context, recipientUUID string, page, limit int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, id, recipientUUID string) error
	MarkAllRead(ctx context.Context, recipientUUID string) (int64, error)
	UnreadCount(ctx context.Context, recipientUUID string) (int64, error)
}

type notificationService struct {
	repo     NotificationRepository
	realtime RealtimePublisher
	logger   *log.Logger
}

func NewNotificationService(repo NotificationRepository, realtime RealtimePublisher) NotificationService {
	return &notificationService{
		repo:     repo,
		realtime: realtime,
		logger:   log.New(log.Writer(), "[notifications] ", log.LstdFlags),
	}
}

// Notify stores the notification and, when the recipient is connected,
// pushes it over the websocket. The push is best effort: the row is the
// source of truth and a delivery failure never fails the caller.
func (s *notificationService) Notify(ctx context.Context, n Notification) (Notification, error) {
	created, err := s.repo.CreateNotification(ctx, n)
	if err != nil {
		return Notification{}, err
	}

	if s.realtime != nil && s.realtime.IsOnline(created.RecipientUUID) {
		event := NotificationEvent{EventType: "notification", Notification: created}
		if err := s.realtime.SendToUser(created.RecipientUUID, event); err != nil {
			s.logger.Printf("realtime delivery to %s failed: %v", created.RecipientUUID, err)
		}
	}

	return created, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, recipientUUID string, page, limit int) ([]Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit
	return s.repo.ListByRecipient(ctx, recipientUUID, limit, offset)
}

func (s *notificationService) MarkRead(ctx context.Context, id, recipientUUID string) error {
	return s.repo.MarkRead(ctx, id, recipientUUID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientUUID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, recipientUUID)
}

func (s *notificationService) UnreadCount(ctx context.Context, recipientUUID string) (int64, error) {
	return s.repo.UnreadCount(ctx, recipientUUID)
}
