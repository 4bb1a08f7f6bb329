package testhelpers

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var uniqueCounter int64

func nextSuffix() int64 {
	return atomic.AddInt64(&uniqueCounter, 1)
}

// CreateTestUser inserts a minimal valid user row and returns its uuid.
func CreateTestUser(t *testing.T, db *pgxpool.Pool) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	name := fmt.Sprintf("test-user-%d", suffix)
	email := fmt.Sprintf("%s@example.com", name)
	id := uuid.New().String()

	_, err := db.Exec(ctx,
		"INSERT INTO users (uuid, name, email, password_hash) VALUES ($1, $2, $3, $4)",
		id, name, email, "hash")
	require.NoError(t, err)
	return id
}

// CreateTestListing inserts an active listing for the given owner and returns its id.
func CreateTestListing(t *testing.T, db *pgxpool.Pool, ownerUUID string) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	title := fmt.Sprintf("test-listing-%d", suffix)
	id := uuid.New().String()

	_, err := db.Exec(ctx,
		"INSERT INTO listings (id, user_uuid, type, swap_type, title) VALUES ($1, $2, 'home', 'permanent', $3)",
		id, ownerUUID, title)
	require.NoError(t, err)
	return id
}

// CreateTestLike inserts a like from the user on the listing and returns its id.
func CreateTestLike(t *testing.T, db *pgxpool.Pool, userUUID, listingID, ownerUUID string) string {
	t.Helper()

	ctx := context.Background()
	id := uuid.New().String()

	_, err := db.Exec(ctx,
		"INSERT INTO likes (id, user_uuid, listing_id, owner_uuid) VALUES ($1, $2, $3, $4)",
		id, userUUID, listingID, ownerUUID)
	require.NoError(t, err)
	return id
}

// CreateTestMatch inserts a match between two users, creating a listing for
// each side, and returns the match id.
func CreateTestMatch(t *testing.T, db *pgxpool.Pool, userA, userB string) string {
	t.Helper()

	ctx := context.Background()
	listingA := CreateTestListing(t, db, userA)
	listingB := CreateTestListing(t, db, userB)
	id := uuid.New().String()

	_, err := db.Exec(ctx,
		"INSERT INTO matches (id, user_a_uuid, user_b_uuid, listing_a_id, listing_b_id) VALUES ($1, $2, $3, $4, $5)",
		id, userA, userB, listingA, listingB)
	require.NoError(t, err)
	return id
}
