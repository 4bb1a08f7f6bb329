package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingRepository interface {
	CreateListing(ctx context.Context, input Listing) (Listing, error)
	UpdateListing(ctx context.Context, input Listing) (Listing, error)
	DeactivateListing(ctx context.Context, id, ownerUUID string) error
	GetListingByID(ctx context.Context, id string) (Listing, error)
	ListListings(ctx context.Context, filters ListingFilters, limit, offset int) ([]Listing, int64, error)
	ListListingsByUser(ctx context.Context, userUUID string, limit, offset int) ([]Listing, int64, error)
	ListActiveListings(ctx context.Context) ([]Listing, error)
}

type ListingFilters struct {
	UserUUID *string
	Type     *string
	SwapType *string
}

const listingColumns = `id, user_uuid, type, swap_type, title, description, location, latitude, longitude, price, images, is_active, created_at`

type postgresListingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &postgresListingRepository{pool: pool}
}

func scanListing(row pgx.Row) (Listing, error) {
	var l Listing
	err := row.Scan(&l.ID, &l.UserUUID, &l.Type, &l.SwapType, &l.Title, &l.Description,
		&l.Location, &l.Latitude, &l.Longitude, &l.Price, &l.Images, &l.IsActive, &l.CreatedAt)
	return l, err
}

func (r *postgresListingRepository) CreateListing(ctx context.Context, input Listing) (Listing, error) {
	query := `INSERT INTO listings (id, user_uuid, type, swap_type, title, description, location, latitude, longitude, price, images, is_active, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
              RETURNING ` + listingColumns

	row := r.pool.QueryRow(ctx, query, input.ID, input.UserUUID, input.Type, input.SwapType,
		input.Title, input.Description, input.Location, input.Latitude, input.Longitude,
		input.Price, input.Images, input.IsActive)

	return scanListing(row)
}

func (r *postgresListingRepository) UpdateListing(ctx context.Context, input Listing) (Listing, error) {
	query := `UPDATE listings
              SET type = $1, swap_type = $2, title = $3, description = $4, location = $5,
                  latitude = $6, longitude = $7, price = $8, images = $9
              WHERE id = $10 AND user_uuid = $11 AND is_deleted = false
              RETURNING ` + listingColumns

	row := r.pool.QueryRow(ctx, query, input.Type, input.SwapType, input.Title, input.Description,
		input.Location, input.Latitude, input.Longitude, input.Price, input.Images,
		input.ID, input.UserUUID)

	updated, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, ErrListingNotFound
		}
		return Listing{}, err
	}
	return updated, nil
}

// DeactivateListing soft-removes a listing. The row stays for matches that
// still reference it, but it never appears in any listing or feed result.
func (r *postgresListingRepository) DeactivateListing(ctx context.Context, id, ownerUUID string) error {
	cmd, err := r.pool.Exec(ctx,
		"UPDATE listings SET is_active = false, is_deleted = true WHERE id = $1 AND user_uuid = $2 AND is_deleted = false",
		id, ownerUUID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *postgresListingRepository) GetListingByID(ctx context.Context, id string) (Listing, error) {
	query := `SELECT ` + listingColumns + `
              FROM listings
              WHERE id = $1 AND is_deleted = false`

	l, err := scanListing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, ErrListingNotFound
		}
		return Listing{}, err
	}
	return l, nil
}

func (r *postgresListingRepository) ListListings(ctx context.Context, filters ListingFilters, limit, offset int) ([]Listing, int64, error) {
	whereClauses := []string{"is_active = true", "is_deleted = false"}
	args := []interface{}{}
	argPos := 1

	if filters.UserUUID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("user_uuid = $%d", argPos))
		args = append(args, *filters.UserUUID)
		argPos++
	}

	if filters.Type != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("type = $%d", argPos))
		args = append(args, *filters.Type)
		argPos++
	}

	if filters.SwapType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("swap_type = $%d", argPos))
		args = append(args, *filters.SwapType)
		argPos++
	}

	whereSQL := "WHERE " + strings.Join(whereClauses, " AND ")

	query := fmt.Sprintf(`SELECT %s
              FROM listings
              %s
              ORDER BY created_at DESC
              LIMIT $%d OFFSET $%d`, listingColumns, whereSQL, argPos, argPos+1)

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, l)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM listings %s", whereSQL)
	countArgs := args[:len(args)-2]

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *postgresListingRepository) ListListingsByUser(ctx context.Context, userUUID string, limit, offset int) ([]Listing, int64, error) {
	query := `SELECT ` + listingColumns + `
              FROM listings
              WHERE user_uuid = $1 AND is_active = true AND is_deleted = false
              ORDER BY created_at DESC
              LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userUUID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, l)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM listings WHERE user_uuid = $1 AND is_active = true AND is_deleted = false",
		userUUID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// ListActiveListings returns every active listing, newest first. The feed
// filters and ranks this set in memory.
func (r *postgresListingRepository) ListActiveListings(ctx context.Context) ([]Listing, error) {
	query := `SELECT ` + listingColumns + `
              FROM listings
              WHERE is_active = true AND is_deleted = false
              ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}

	return list, rows.Err()
}
