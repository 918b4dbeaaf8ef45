package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firechat/internal/adapter/api"
)

func TestLoginValidatesEmail(t *testing.T) {
	handler := NewAuthHandler(nil)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/login", `{"email":"not-an-email","password":"secret123"}`)

	require.NoError(t, handler.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "email")
}

func TestLoginRequiresPassword(t *testing.T) {
	handler := NewAuthHandler(nil)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/login", `{"email":"alice@example.com"}`)

	require.NoError(t, handler.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "password is required")
}

func TestRegisterRequiresAvatarFile(t *testing.T) {
	handler := NewAuthHandler(nil)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("email", "alice@example.com"))
	require.NoError(t, writer.WriteField("password", "secret123"))
	require.NoError(t, writer.Close())

	e := echo.New()
	e.Validator = api.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "avatar")
}
