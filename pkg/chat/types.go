package chat

import (
	"time"
)

// OutgoingMessage is the payload a client sends over the websocket.
// ClientRef is the temporary id the client attached when it staged the
// message locally; it comes back on the acknowledgement so the client can
// swap its optimistic copy for the stored one.
type OutgoingMessage struct {
	MatchID   string `json:"match_id"`
	Content   string `json:"content"`
	ClientRef string `json:"client_ref,omitempty"`
}

// Message is a stored chat message, scoped to a match.
type Message struct {
	ID         string    `json:"id"`
	MatchID    string    `json:"match_id"`
	SenderUUID string    `json:"sender_uuid"`
	Content    string    `json:"content"`
	ClientRef  string    `json:"client_ref,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Acknowledgement is sent back to the sender once their message is stored.
type Acknowledgement struct {
	EventType string `json:"event_type"` // "ack"
	ClientRef string `json:"client_ref,omitempty"`
	MessageID string `json:"message_id"`
	Status    string `json:"status"` // "sent" or "queued"
	Error     string `json:"error,omitempty"`
}

// MessageEvent wraps a stored message for delivery to the other participant.
type MessageEvent struct {
	EventType string  `json:"event_type"` // "message"
	Message   Message `json:"message"`
}

// ErrorResponse is sent to a client when its payload is rejected.
type ErrorResponse struct {
	EventType string `json:"event_type"` // "error"
	ClientRef string `json:"client_ref,omitempty"`
	Error     string `json:"error"`
}
