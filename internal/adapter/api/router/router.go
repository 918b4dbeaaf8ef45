package router

import (
	"github.com/labstack/echo/v4"

	"firechat/internal/adapter/api/handler"
	"firechat/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	messageHandler *handler.MessageHandler,
	wsHandler *handler.WebSocketHandler,
) {
	SetupHealthRouter(e)
	SetupAuthRouter(e, authHandler)
	SetupUserRouter(e, userHandler, authMiddleware)
	SetupMessageRouter(e, messageHandler, authMiddleware)
	SetupWebSocketRouter(e, wsHandler)
}
