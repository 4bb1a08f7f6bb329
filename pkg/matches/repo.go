package matches

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

type MatchRepository interface {
	CreateMatch(ctx context.Context, m Match) (Match, error)
	GetMatchByID(ctx context.Context, id string) (Match, error)
	ListMatchesForUser(ctx context.Context, userUUID string) ([]Match, error)
	DeleteMatch(ctx context.Context, id, userUUID string) error
	MatchExistsForUsers(ctx context.Context, userA, userB string) (bool, error)
}

type postgresMatchRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresMatchRepository(pool *pgxpool.Pool) MatchRepository {
	return &postgresMatchRepository{pool: pool}
}

const matchColumns = `id, user_a_uuid, user_b_uuid, listing_a_id, listing_b_id, created_at`

func scanMatch(row pgx.Row) (Match, error) {
	var m Match
	err := row.Scan(&m.ID, &m.UserAUUID, &m.UserBUUID, &m.ListingAID, &m.ListingBID, &m.CreatedAt)
	return m, err
}

func (r *postgresMatchRepository) CreateMatch(ctx context.Context, m Match) (Match, error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`
		INSERT INTO matches (%s, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, false)
		RETURNING %s
	`, matchColumns, matchColumns)

	row := r.pool.QueryRow(ctx, query,
		m.ID, m.UserAUUID, m.UserBUUID, m.ListingAID, m.ListingBID, m.CreatedAt)

	created, err := scanMatch(row)
	if err != nil {
		return Match{}, fmt.Errorf("insert match: %w", err)
	}
	return created, nil
}

func (r *postgresMatchRepository) GetMatchByID(ctx context.Context, id string) (Match, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM matches
		WHERE id = $1 AND is_deleted = false
	`, matchColumns)

	m, err := scanMatch(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Match{}, ErrMatchNotFound
		}
		return Match{}, fmt.Errorf("query match: %w", err)
	}
	return m, nil
}

func (r *postgresMatchRepository) ListMatchesForUser(ctx context.Context, userUUID string) ([]Match, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM matches
		WHERE (user_a_uuid = $1 OR user_b_uuid = $1) AND is_deleted = false
		ORDER BY created_at DESC
	`, matchColumns)

	rows, err := r.pool.Query(ctx, query, userUUID)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	result := make([]Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

// DeleteMatch soft deletes a match; only a participant may remove it.
func (r *postgresMatchRepository) DeleteMatch(ctx context.Context, id, userUUID string) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE matches SET is_deleted = true
		WHERE id = $1 AND (user_a_uuid = $2 OR user_b_uuid = $2) AND is_deleted = false
	`, id, userUUID)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresMatchRepository) MatchExistsForUsers(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE ((user_a_uuid = $1 AND user_b_uuid = $2)
			    OR (user_a_uuid = $2 AND user_b_uuid = $1))
			  AND is_deleted = false
		)
	`, userA, userB).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query match existence: %w", err)
	}
	return exists, nil
}
