package chat

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one connected user.
type Client struct {
	UserUUID string
	Conn     *websocket.Conn
	Send     chan interface{}
	Done     chan struct{}
}

// ConnectionManager tracks active websocket connections, one per user.
type ConnectionManager struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[string]*Client),
	}
}

// AddClient registers a connection for the user. A previous connection for
// the same user is closed first so each user holds at most one.
func (cm *ConnectionManager) AddClient(userUUID string, conn *websocket.Conn) *Client {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if existing, ok := cm.clients[userUUID]; ok {
		close(existing.Done)
		if existing.Conn != nil {
			existing.Conn.Close()
		}
	}

	client := &Client{
		UserUUID: userUUID,
		Conn:     conn,
		Send:     make(chan interface{}, 32),
		Done:     make(chan struct{}),
	}

	cm.clients[userUUID] = client
	return client
}

// RemoveClient unregisters the connection and signals its loops to stop.
// Only the registered client is removed: a stale loop winding down after a
// reconnect must not evict the replacement connection.
func (cm *ConnectionManager) RemoveClient(client *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	current, ok := cm.clients[client.UserUUID]
	if !ok || current != client {
		return
	}
	close(current.Done)
	delete(cm.clients, client.UserUUID)
}

// GetClient returns the user's client, or nil when offline.
func (cm *ConnectionManager) GetClient(userUUID string) *Client {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return cm.clients[userUUID]
}

// IsOnline reports whether the user currently has a connection.
func (cm *ConnectionManager) IsOnline(userUUID string) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	_, exists := cm.clients[userUUID]
	return exists
}

// OnlineUsers returns the uuids of all connected users.
func (cm *ConnectionManager) OnlineUsers() []string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	users := make([]string, 0, len(cm.clients))
	for userUUID := range cm.clients {
		users = append(users, userUUID)
	}
	return users
}

// SendToUser queues a payload for delivery to one user.
// Returns an error when the user is offline or their queue is full.
func (cm *ConnectionManager) SendToUser(userUUID string, payload interface{}) error {
	cm.mu.RLock()
	client, ok := cm.clients[userUUID]
	cm.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user %s is not online", userUUID)
	}

	select {
	case client.Send <- payload:
		return nil
	case <-client.Done:
		return fmt.Errorf("user %s disconnected", userUUID)
	default:
		return fmt.Errorf("user %s message queue full", userUUID)
	}
}
