package likes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrLikeNotFound = errors.New("like not found")
	ErrAlreadyLiked = errors.New("listing already liked")
)

type LikeRepository interface {
	CreateLike(ctx context.Context, l Like) (Like, error)
	DeleteLike(ctx context.Context, userUUID, listingID string) error
	ListLikesByUser(ctx context.Context, userUUID string) ([]Like, error)
	// FindReciprocalLike returns the newest like the owner placed on any
	// active listing of the liker, if one exists.
	FindReciprocalLike(ctx context.Context, ownerUUID, likerUUID string) (Like, error)
}

type postgresLikeRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLikeRepository(pool *pgxpool.Pool) LikeRepository {
	return &postgresLikeRepository{pool: pool}
}

const likeColumns = `id, user_uuid, listing_id, owner_uuid, created_at`

func scanLike(row pgx.Row) (Like, error) {
	var l Like
	err := row.Scan(&l.ID, &l.UserUUID, &l.ListingID, &l.OwnerUUID, &l.CreatedAt)
	return l, err
}

func (r *postgresLikeRepository) CreateLike(ctx context.Context, l Like) (Like, error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`
		INSERT INTO likes (%s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, likeColumns, likeColumns)

	created, err := scanLike(r.pool.QueryRow(ctx, query,
		l.ID, l.UserUUID, l.ListingID, l.OwnerUUID, l.CreatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Like{}, ErrAlreadyLiked
		}
		return Like{}, fmt.Errorf("insert like: %w", err)
	}
	return created, nil
}

func (r *postgresLikeRepository) DeleteLike(ctx context.Context, userUUID, listingID string) error {
	cmd, err := r.pool.Exec(ctx, `
		DELETE FROM likes
		WHERE user_uuid = $1 AND listing_id = $2
	`, userUUID, listingID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (r *postgresLikeRepository) ListLikesByUser(ctx context.Context, userUUID string) ([]Like, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM likes
		WHERE user_uuid = $1
		ORDER BY created_at DESC
	`, likeColumns)

	rows, err := r.pool.Query(ctx, query, userUUID)
	if err != nil {
		return nil, fmt.Errorf("query likes: %w", err)
	}
	defer rows.Close()

	result := make([]Like, 0)
	for rows.Next() {
		l, err := scanLike(rows)
		if err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

func (r *postgresLikeRepository) FindReciprocalLike(ctx context.Context, ownerUUID, likerUUID string) (Like, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM (
			SELECT l.id, l.user_uuid, l.listing_id, l.owner_uuid, l.created_at
			FROM likes l
			JOIN listings li ON li.id = l.listing_id
			WHERE l.user_uuid = $1
			  AND li.user_uuid = $2
			  AND li.is_active = true
			  AND li.is_deleted = false
			ORDER BY l.created_at DESC
			LIMIT 1
		) sub
	`, likeColumns)

	l, err := scanLike(r.pool.QueryRow(ctx, query, ownerUUID, likerUUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Like{}, ErrLikeNotFound
		}
		return Like{}, fmt.Errorf("query reciprocal like: %w", err)
	}
	return l, nil
}
