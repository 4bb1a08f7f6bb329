package likes

import "time"

// Like records one user liking another user's listing. OwnerUUID is
// denormalized from the listing so reciprocal-like checks need no join on
// the hot path.
type Like struct {
	ID        string    `json:"id"`
	UserUUID  string    `json:"user_uuid"`
	ListingID string    `json:"listing_id"`
	OwnerUUID string    `json:"owner_uuid"`
	CreatedAt time.Time `json:"created_at"`
}
