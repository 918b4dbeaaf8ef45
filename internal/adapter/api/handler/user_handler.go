package handler

import (
	"github.com/labstack/echo/v4"

	"firechat/internal/usecase"
	"firechat/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

// ListUsers returns every user except the caller, for partner selection.
func (h *UserHandler) ListUsers(c echo.Context) error {
	userID := c.Get("uid").(string)

	users, err := h.userUseCase.ListUsers(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, users)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	uid := c.Param("uid")

	user, err := h.userUseCase.ResolveUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
