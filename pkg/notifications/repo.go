package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n Notification) (Notification, error)
	ListByRecipient(ctx context.Context, recipientUUID string, limit, offset int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, id, recipientUUID string) error
	MarkAllRead(ctx context.Context, recipientUUID string) (int64, error)
	UnreadCount(ctx context.Context, recipientUUID string) (int64, error)
}

type postgresNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &postgresNotificationRepository{pool: pool}
}

const notificationColumns = `id, recipient_uuid, sender_uuid, listing_id, type, message, is_read, created_at`

func scanNotification(row pgx.Row) (Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.RecipientUUID, &n.SenderUUID, &n.ListingID, &n.Type, &n.Message, &n.IsRead, &n.CreatedAt)
	return n, err
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, n Notification) (Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`
		INSERT INTO notifications (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, notificationColumns, notificationColumns)

	row := r.pool.QueryRow(ctx, query,
		n.ID, n.RecipientUUID, n.SenderUUID, n.ListingID, n.Type, n.Message, n.IsRead, n.CreatedAt)

	created, err := scanNotification(row)
	if err != nil {
		return Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return created, nil
}

func (r *postgresNotificationRepository) ListByRecipient(ctx context.Context, recipientUUID string, limit, offset int) ([]Notification, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_uuid = $1`, recipientUUID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM notifications
		WHERE recipient_uuid = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, notificationColumns)

	rows, err := r.pool.Query(ctx, query, recipientUUID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	result := make([]Notification, 0, limit)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rows: %w", err)
	}

	return result, total, nil
}

// MarkRead flips a single notification, scoped to the recipient so one user
// cannot acknowledge another user's notifications.
func (r *postgresNotificationRepository) MarkRead(ctx context.Context, id, recipientUUID string) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = true
		WHERE id = $1 AND recipient_uuid = $2
	`, id, recipientUUID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllRead(ctx context.Context, recipientUUID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = true
		WHERE recipient_uuid = $1 AND is_read = false
	`, recipientUUID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *postgresNotificationRepository) UnreadCount(ctx context.Context, recipientUUID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_uuid = $1 AND is_read = false
	`, recipientUUID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}
