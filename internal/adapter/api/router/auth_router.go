package router

import (
	"github.com/labstack/echo/v4"

	"firechat/internal/adapter/api/handler"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler) {
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
}
