package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	CreateUser(ctx context.Context, u User, passwordHash string) (User, error)
	UpdateUser(ctx context.Context, u User) (User, error)
	DeleteUser(ctx context.Context, uuid string) error
	GetUserByUUID(ctx context.Context, uuid string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ReviveUserByEmail(ctx context.Context, email string, u User, passwordHash string) (User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]User, int64, error)
	ListAllUsers(ctx context.Context) ([]User, error)
	// Auth and verification helpers
	GetUserAuthByEmail(ctx context.Context, email string) (string, string, error)
	SetVerified(ctx context.Context, uuid string, verified bool) error
	// Premium subscriptions
	SetPremium(ctx context.Context, uuid, plan string) error
}

const userColumns = `uuid, name, email, bio, location, latitude, longitude, profile_photo_url, verified, is_premium, created_at`

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.UUID, &u.Name, &u.Email, &u.Bio, &u.Location, &u.Latitude, &u.Longitude,
		&u.ProfilePhotoURL, &u.Verified, &u.IsPremium, &u.CreatedAt)
	return u, err
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, u User, passwordHash string) (User, error) {
	query := `INSERT INTO users (uuid, name, email, password_hash, bio, location, latitude, longitude, profile_photo_url, verified, is_premium, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, false, NOW())
              RETURNING ` + userColumns
	row := r.pool.QueryRow(ctx, query, u.UUID, u.Name, u.Email, passwordHash, u.Bio, u.Location,
		u.Latitude, u.Longitude, u.ProfilePhotoURL)

	return scanUser(row)
}

func (r *postgresUserRepository) UpdateUser(ctx context.Context, u User) (User, error) {
	query := `UPDATE users
              SET name = $1, bio = $2, location = $3, latitude = $4, longitude = $5, profile_photo_url = $6
              WHERE uuid = $7 AND is_deleted = false
              RETURNING ` + userColumns
	row := r.pool.QueryRow(ctx, query, u.Name, u.Bio, u.Location, u.Latitude, u.Longitude,
		u.ProfilePhotoURL, u.UUID)

	out, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return out, nil
}

func (r *postgresUserRepository) DeleteUser(ctx context.Context, uuid string) error {
	cmd, err := r.pool.Exec(ctx, "UPDATE users SET is_deleted = true WHERE uuid = $1 AND is_deleted = false", uuid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepository) GetUserByUUID(ctx context.Context, uuid string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uuid = $1 AND is_deleted = false`

	u, err := scanUser(r.pool.QueryRow(ctx, query, uuid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *postgresUserRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_deleted = false`

	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

// ReviveUserByEmail reactivates a soft-deleted account on re-registration.
func (r *postgresUserRepository) ReviveUserByEmail(ctx context.Context, email string, u User, passwordHash string) (User, error) {
	query := `UPDATE users
              SET uuid = $1, name = $2, password_hash = $3, profile_photo_url = $4, verified = false, is_deleted = false
              WHERE email = $5 AND is_deleted = true
              RETURNING ` + userColumns
	row := r.pool.QueryRow(ctx, query, u.UUID, u.Name, passwordHash, u.ProfilePhotoURL, email)

	out, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return out, nil
}

func (r *postgresUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]User, int64, error) {
	query := `SELECT ` + userColumns + `
              FROM users
              WHERE is_deleted = false
              ORDER BY created_at DESC
              LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE is_deleted = false").Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// ListAllUsers returns every active user; the feed's verified-first sort
// needs the whole owner set.
func (r *postgresUserRepository) ListAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_deleted = false`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}

	return list, rows.Err()
}

func (r *postgresUserRepository) GetUserAuthByEmail(ctx context.Context, email string) (string, string, error) {
	var uuid, hash string
	err := r.pool.QueryRow(ctx,
		"SELECT uuid, password_hash FROM users WHERE email = $1 AND is_deleted = false",
		email).Scan(&uuid, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}
	return uuid, hash, nil
}

func (r *postgresUserRepository) SetVerified(ctx context.Context, uuid string, verified bool) error {
	cmd, err := r.pool.Exec(ctx,
		"UPDATE users SET verified = $2 WHERE uuid = $1 AND is_deleted = false", uuid, verified)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetPremium flags the user and records the subscription row.
func (r *postgresUserRepository) SetPremium(ctx context.Context, uuid, plan string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx,
		"UPDATE users SET is_premium = true WHERE uuid = $1 AND is_deleted = false", uuid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO user_subscriptions (user_uuid, plan, started_at) VALUES ($1, $2, NOW())",
		uuid, plan)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
