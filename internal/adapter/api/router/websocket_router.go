package router

import (
	"github.com/labstack/echo/v4"

	"firechat/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up the streaming endpoint. Auth is handled inside
// the handler since browsers cannot set headers on WebSocket upgrades.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
