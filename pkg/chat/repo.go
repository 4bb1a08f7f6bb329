package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrMatchNotFound = errors.New("match not found")

type MessageStore interface {
	SaveMessage(ctx context.Context, matchID, senderUUID, content, clientRef string) (Message, error)
	MatchParticipants(ctx context.Context, matchID string) (string, string, error)
	MessagesForMatch(ctx context.Context, matchID string, limit int, before time.Time) ([]Message, error)
}

type PostgresMessageStore struct {
	pool *pgxpool.Pool
}

func NewPostgresMessageStore(pool *pgxpool.Pool) *PostgresMessageStore {
	return &PostgresMessageStore{pool: pool}
}

// SaveMessage inserts a message row for the match and returns the stored
// record. The generated id is what clients use to replace their optimistic
// copy keyed by clientRef.
func (r *PostgresMessageStore) SaveMessage(ctx context.Context, matchID, senderUUID, content, clientRef string) (Message, error) {
	if r.pool == nil {
		return Message{}, errors.New("db pool is nil")
	}

	const insertSQL = `
		INSERT INTO messages (id, match_id, sender_uuid, content, client_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, match_id, sender_uuid, content, client_ref, created_at
	`

	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	msg := Message{}
	row := r.pool.QueryRow(ctxTimeout, insertSQL,
		uuid.New().String(), matchID, senderUUID, content, clientRef, time.Now().UTC())
	if err := row.Scan(&msg.ID, &msg.MatchID, &msg.SenderUUID, &msg.Content, &msg.ClientRef, &msg.CreatedAt); err != nil {
		return Message{}, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

// MatchParticipants returns the two user uuids on either side of a match.
func (r *PostgresMessageStore) MatchParticipants(ctx context.Context, matchID string) (string, string, error) {
	if r.pool == nil {
		return "", "", errors.New("db pool is nil")
	}

	const querySQL = `
		SELECT user_a_uuid, user_b_uuid
		FROM matches
		WHERE id = $1 AND is_deleted = false
	`

	ctxTimeout, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a, b string
	err := r.pool.QueryRow(ctxTimeout, querySQL, matchID).Scan(&a, &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", ErrMatchNotFound
		}
		return "", "", fmt.Errorf("query match participants: %w", err)
	}
	return a, b, nil
}

// MessagesForMatch fetches the page of the conversation directly before the
// cursor, returned oldest first. Paging backwards means taking the newest
// rows below the cursor, so the query selects descending and the slice is
// reversed for chronological output.
func (r *PostgresMessageStore) MessagesForMatch(ctx context.Context, matchID string, limit int, before time.Time) ([]Message, error) {
	if r.pool == nil {
		return nil, errors.New("db pool is nil")
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	const querySQL = `
		SELECT id, match_id, sender_uuid, content, client_ref, created_at
		FROM messages
		WHERE match_id = $1 AND created_at < $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctxTimeout, querySQL, matchID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	result := make([]Message, 0, limit)
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.MatchID, &msg.SenderUUID, &msg.Content, &msg.ClientRef, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		result = append(result, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}
