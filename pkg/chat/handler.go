package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"swapyard/pkg/response"
	"swapyard/pkg/statesync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	maxContentLength = 10000
	historyTimeout   = 5 * time.Second
)

// Handler owns the websocket endpoint and the message history endpoint.
type Handler struct {
	manager *ConnectionManager
	repo    MessageStore
	logger  interface {
		Printf(string, ...interface{})
	}
}

func NewHandler(manager *ConnectionManager, repo MessageStore) *Handler {
	return &Handler{
		manager: manager,
		repo:    repo,
		logger:  log.New(log.Writer(), "[chat] ", log.LstdFlags),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, validate origin properly
		return true
	},
}

// HandleWebSocketGin validates user_uuid from query and upgrades to WebSocket.
func (h *Handler) HandleWebSocketGin(c *gin.Context) {
	uid := c.Query("user_uuid")
	if _, err := uuid.Parse(uid); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_uuid, must be UUID"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Printf("websocket upgrade error: %v", err)
		return
	}

	client := h.manager.AddClient(uid, conn)
	h.logger.Printf("user %s connected", uid)

	go h.readLoop(client)
	go h.writeLoop(client)
}

// readLoop reads messages from the WebSocket connection
func (h *Handler) readLoop(client *Client) {
	defer func() {
		h.manager.RemoveClient(client)
		client.Conn.Close()
		h.logger.Printf("user %s disconnected", client.UserUUID)
	}()

	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		select {
		case <-client.Done:
			return
		default:
		}

		var msg OutgoingMessage
		err := client.Conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Printf("websocket error for user %s: %v", client.UserUUID, err)
			}
			return
		}

		go h.processMessage(client, msg)
	}
}

// writeLoop writes queued payloads to the WebSocket connection
func (h *Handler) writeLoop(client *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-client.Done:
			return

		case payload, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			err := client.Conn.WriteJSON(payload)
			if err != nil {
				h.logger.Printf("write error for user %s: %v", client.UserUUID, err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Printf("ping error for user %s: %v", client.UserUUID, err)
				return
			}
		}
	}
}

// processMessage validates, persists, acknowledges and forwards one message.
// Persistence happens before any delivery so the acknowledgement always
// carries the stored id for the sender's client_ref.
func (h *Handler) processMessage(client *Client, msg OutgoingMessage) {
	if err := h.validateMessage(msg); err != nil {
		h.sendError(client, msg.ClientRef, err.Error())
		return
	}

	a, b, err := h.repo.MatchParticipants(context.Background(), msg.MatchID)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			h.sendError(client, msg.ClientRef, "match not found")
			return
		}
		h.logger.Printf("participant lookup failed for match %s: %v", msg.MatchID, err)
		h.sendError(client, msg.ClientRef, "failed to send message")
		return
	}

	var peer string
	switch client.UserUUID {
	case a:
		peer = b
	case b:
		peer = a
	default:
		h.sendError(client, msg.ClientRef, "not a participant of this match")
		return
	}

	stored, err := h.repo.SaveMessage(context.Background(), msg.MatchID, client.UserUUID, msg.Content, msg.ClientRef)
	if err != nil {
		h.logger.Printf("db insert failed for user %s in match %s: %v", client.UserUUID, msg.MatchID, err)
		h.sendError(client, msg.ClientRef, "failed to persist message")
		return
	}

	ack := Acknowledgement{
		EventType: "ack",
		ClientRef: msg.ClientRef,
		MessageID: stored.ID,
		Status:    "sent",
	}

	if h.manager.IsOnline(peer) {
		if err := h.manager.SendToUser(peer, MessageEvent{EventType: "message", Message: stored}); err != nil {
			h.logger.Printf("delivery to %s failed: %v", peer, err)
			ack.Status = "queued"
		}
	} else {
		ack.Status = "queued"
	}

	select {
	case client.Send <- ack:
	case <-client.Done:
	}
}

func (h *Handler) validateMessage(msg OutgoingMessage) error {
	if msg.Content == "" {
		return fmt.Errorf("message content cannot be empty")
	}
	if len(msg.Content) > maxContentLength {
		return fmt.Errorf("message content too long (max %d characters)", maxContentLength)
	}
	if _, err := uuid.Parse(msg.MatchID); err != nil {
		return fmt.Errorf("match_id must be a UUID")
	}
	return nil
}

func (h *Handler) sendError(client *Client, clientRef, errMsg string) {
	errResp := ErrorResponse{
		EventType: "error",
		ClientRef: clientRef,
		Error:     errMsg,
	}

	select {
	case client.Send <- errResp:
	case <-client.Done:
	}
}

// GetStatusGin godoc
// @Summary Get online users
// @Description Returns list of currently connected users
// @Tags chat
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /chat/status [get]
func (h *Handler) GetStatusGin(c *gin.Context) {
	users := h.manager.OnlineUsers()
	response.SendAPIResponse(c, http.StatusOK, true, "online status", map[string]interface{}{
		"online_users": users,
		"count":        len(users),
	})
}

// GetMatchMessagesGin godoc
// @Summary Get conversation history for a match
// @Description Fetch chat messages of a match, oldest first
// @Tags chat
// @Param id path string true "Match UUID"
// @Param limit query int false "Maximum messages to return (max 100)"
// @Param before query int false "Epoch seconds cursor for pagination"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Failure 504 {object} response.APIResponse
// @Router /matches/{id}/messages [get]
func (h *Handler) GetMatchMessagesGin(c *gin.Context) {
	matchID := c.Param("id")
	if _, err := uuid.Parse(matchID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid match id, must be UUID", nil)
		return
	}

	limit := 50
	if ls := c.Query("limit"); ls != "" {
		if _, err := fmt.Sscanf(ls, "%d", &limit); err != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid limit parameter", nil)
			return
		}
	}
	before := time.Now().UTC()
	if bs := c.Query("before"); bs != "" {
		var epoch int64
		if _, err := fmt.Sscanf(bs, "%d", &epoch); err != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid before parameter", nil)
			return
		}
		before = time.Unix(epoch, 0).UTC()
	}

	// The load either completes or the caller is released after the timeout;
	// a result that arrives later is dropped.
	result, err := statesync.Load(c.Request.Context(), historyTimeout, func(ctx context.Context) (interface{}, error) {
		return h.repo.MessagesForMatch(ctx, matchID, limit, before)
	})
	if err != nil {
		if errors.Is(err, statesync.ErrLoadTimeout) {
			response.SendAPIResponse(c, http.StatusGatewayTimeout, false, "message history timed out", nil)
			return
		}
		h.logger.Printf("failed to fetch messages for match %s: %v", matchID, err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to fetch messages", nil)
		return
	}

	messages := result.([]Message)
	response.SendAPIResponse(c, http.StatusOK, true, "messages", map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}
