package matches

import "time"

// Match joins two users through the pair of listings they liked.
type Match struct {
	ID         string    `json:"id"`
	UserAUUID  string    `json:"user_a_uuid"`
	UserBUUID  string    `json:"user_b_uuid"`
	ListingAID string    `json:"listing_a_id"`
	ListingBID string    `json:"listing_b_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Other returns the opposite participant of the given user, and whether the
// user belongs to the match at all.
func (m Match) Other(userUUID string) (string, bool) {
	switch userUUID {
	case m.UserAUUID:
		return m.UserBUUID, true
	case m.UserBUUID:
		return m.UserAUUID, true
	default:
		return "", false
	}
}
