package handler

import (
	"github.com/labstack/echo/v4"

	"firechat/internal/usecase"
	"firechat/pkg/errors"
	"firechat/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account from a multipart form carrying the credentials
// and the mandatory avatar image.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return response.Error(c, errors.BadRequest("You must select an avatar image", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read avatar image", err))
	}
	defer file.Close()

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Email:             req.Email,
		Password:          req.Password,
		Avatar:            file,
		AvatarContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
