package push

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSubscriptionNotFound = errors.New("push subscription not found")

type SubscriptionRepository interface {
	AddSubscription(ctx context.Context, userUUID, endpointARN string) (PushSubscription, error)
	RemoveSubscription(ctx context.Context, id, userUUID string) error
	ListByUser(ctx context.Context, userUUID string) ([]PushSubscription, error)
}

type postgresSubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &postgresSubscriptionRepository{pool: pool}
}

func (r *postgresSubscriptionRepository) AddSubscription(ctx context.Context, userUUID, endpointARN string) (PushSubscription, error) {
	sub := PushSubscription{
		ID:          uuid.New().String(),
		UserUUID:    userUUID,
		EndpointARN: endpointARN,
		CreatedAt:   time.Now().UTC(),
	}

	// Re-registering the same endpoint replaces the old row.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO push_subscriptions (id, user_uuid, endpoint_arn, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_uuid, endpoint_arn)
		DO UPDATE SET created_at = EXCLUDED.created_at
	`, sub.ID, sub.UserUUID, sub.EndpointARN, sub.CreatedAt)
	if err != nil {
		return PushSubscription{}, fmt.Errorf("insert push subscription: %w", err)
	}
	return sub, nil
}

func (r *postgresSubscriptionRepository) RemoveSubscription(ctx context.Context, id, userUUID string) error {
	cmd, err := r.pool.Exec(ctx, `
		DELETE FROM push_subscriptions
		WHERE id = $1 AND user_uuid = $2
	`, id, userUUID)
	if err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *postgresSubscriptionRepository) ListByUser(ctx context.Context, userUUID string) ([]PushSubscription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_uuid, endpoint_arn, created_at
		FROM push_subscriptions
		WHERE user_uuid = $1
	`, userUUID)
	if err != nil {
		return nil, fmt.Errorf("query push subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]PushSubscription, 0)
	for rows.Next() {
		var sub PushSubscription
		if err := rows.Scan(&sub.ID, &sub.UserUUID, &sub.EndpointARN, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan push subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return subs, nil
}
