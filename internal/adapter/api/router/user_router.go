package router

import (
	"github.com/labstack/echo/v4"

	"firechat/internal/adapter/api/handler"
	"firechat/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	userGroup := e.Group("/v1/users")
	userGroup.Use(authMiddleware.Authenticate)

	userGroup.GET("", userHandler.ListUsers)    // GET /v1/users - partner candidates, caller excluded
	userGroup.GET("/:uid", userHandler.GetUser) // GET /v1/users/:uid - point lookup
}
