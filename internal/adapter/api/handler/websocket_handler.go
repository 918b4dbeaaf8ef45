package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"firechat/internal/adapter/api/middleware"
	"firechat/internal/infrastructure/stream"
	ws "firechat/internal/infrastructure/websocket"
	"firechat/internal/usecase"
	"firechat/pkg/errors"
)

type WebSocketHandler struct {
	manager        *ws.Manager
	dispatcher     *stream.Dispatcher
	authMiddleware *middleware.AuthMiddleware
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(manager *ws.Manager, dispatcher *stream.Dispatcher, authMiddleware *middleware.AuthMiddleware) *WebSocketHandler {
	return &WebSocketHandler{
		manager:        manager,
		dispatcher:     dispatcher,
		authMiddleware: authMiddleware,
	}
}

// HandleWebSocket upgrades the connection and streams either one conversation
// (?peer=<uid>) or the caller's recent-conversation feed (no peer). The
// subscription lives until the client disconnects; it is not restarted after
// an error.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		if authHeader := c.Request().Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		return errors.Unauthorized("Authentication required", nil)
	}

	userID, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	peer := c.QueryParam("peer")

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(userID, conn)
	h.manager.Register <- client

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	defer func() { h.manager.Unregister <- client }()
	defer close(client.Send)

	go client.WritePump()
	go func() {
		client.ReadPump()
		cancel()
	}()

	if peer != "" {
		h.streamMessages(ctx, client, userID, peer)
	} else {
		h.streamRecent(ctx, client, userID)
	}

	return nil
}

func (h *WebSocketHandler) streamMessages(ctx context.Context, client *ws.Client, owner, peer string) {
	for ev := range h.dispatcher.SubscribeMessages(ctx, owner, peer) {
		var payload interface{}
		if ev.Err != nil {
			payload = map[string]interface{}{
				"type":    "error",
				"message": ev.Err.Error(),
			}
		} else {
			payload = map[string]interface{}{
				"type":    "message",
				"kind":    kindName(ev.Kind),
				"message": ev.Message,
			}
		}

		if !send(ctx, client, payload) {
			return
		}
	}
}

// streamRecent materializes the recent feed through the reducer so every
// frame carries the deduplicated, most-recently-touched-first view.
func (h *WebSocketHandler) streamRecent(ctx context.Context, client *ws.Client, owner string) {
	feed := usecase.NewRecentFeed()

	for ev := range h.dispatcher.SubscribeRecent(ctx, owner) {
		if ev.Err != nil {
			send(ctx, client, map[string]interface{}{
				"type":    "error",
				"message": ev.Err.Error(),
			})
			return
		}

		if ev.Kind == stream.Removed {
			feed.Remove(ev.Entry.ID)
		} else {
			feed.Upsert(ev.Entry)
		}

		payload := map[string]interface{}{
			"type":    "recent_feed",
			"entries": feed.Entries(),
		}

		if !send(ctx, client, payload) {
			return
		}
	}
}

func send(ctx context.Context, client *ws.Client, payload interface{}) bool {
	data, err := json.Marshal(payload)
	if err != nil {
		return true
	}

	select {
	case client.Send <- data:
		return true
	case <-ctx.Done():
		return false
	}
}

func kindName(kind stream.ChangeKind) string {
	switch kind {
	case stream.Modified:
		return "modified"
	case stream.Removed:
		return "removed"
	default:
		return "added"
	}
}
