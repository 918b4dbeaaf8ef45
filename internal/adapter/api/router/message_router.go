package router

import (
	"github.com/labstack/echo/v4"

	"firechat/internal/adapter/api/handler"
	"firechat/internal/adapter/api/middleware"
)

func SetupMessageRouter(e *echo.Echo, messageHandler *handler.MessageHandler, authMiddleware *middleware.AuthMiddleware) {
	messageGroup := e.Group("/v1")
	messageGroup.Use(authMiddleware.Authenticate)

	messageGroup.POST("/messages", messageHandler.SendMessage) // POST /v1/messages - fan-out send
	messageGroup.GET("/messages", messageHandler.GetMessages)  // GET /v1/messages?peer= - conversation history
	messageGroup.GET("/recent", messageHandler.GetRecent)      // GET /v1/recent - recent conversations
}
