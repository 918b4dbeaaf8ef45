package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"firechat/pkg/logger"
)

// Client is one WebSocket subscriber connection. A user may hold several
// clients at once (one per open subscription).
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
}

// Manager tracks the active subscriber connections.
type Manager struct {
	clients    map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's bookkeeping loop in a goroutine. Unregistering
// only drops the client from the registry; the owning handler closes Send.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				delete(m.clients, client)
				m.mutex.Unlock()
				logger.Debug("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// ClientCount reports the number of registered connections.
func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// ReadPump drains the connection until the peer closes it. Incoming frames
// carry no protocol meaning; the read loop exists to observe disconnects.
func (c *Client) ReadPump() {
	defer c.Conn.Close()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			return
		}
	}
}

// WritePump forwards Send to the connection until Send is closed or a write
// fails.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}
