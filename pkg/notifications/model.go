package notifications

import "time"

// Notification types mirror the events the service emits.
const (
	TypeLike    = "like"
	TypeMatch   = "match"
	TypeMessage = "message"
)

type Notification struct {
	ID            string    `json:"id"`
	RecipientUUID string    `json:"recipient_uuid"`
	SenderUUID    *string   `json:"sender_uuid,omitempty"`
	ListingID     *string   `json:"listing_id,omitempty"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

// NotificationEvent wraps a notification for websocket delivery. Clients
// upsert by id, so a replayed event never produces a duplicate entry.
type NotificationEvent struct {
	EventType    string       `json:"event_type"` // "notification"
	Notification Notification `json:"notification"`
}
