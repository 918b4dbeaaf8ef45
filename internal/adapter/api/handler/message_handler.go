package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"firechat/internal/usecase"
	"firechat/pkg/errors"
	"firechat/pkg/response"
)

type MessageHandler struct {
	messageUseCase *usecase.MessageUseCase
}

func NewMessageHandler(messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

type sendMessageRequest struct {
	ToID string `json:"to_id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// SendMessage runs the fan-out pipeline. A partial fan-out comes back as a
// PARTIAL_SEND error, never as success.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	result, err := h.messageUseCase.Send(c.Request().Context(), userID, usecase.SendInput{
		ToID: req.ToID,
		Text: req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

// GetMessages returns the caller's view of one conversation, oldest first.
func (h *MessageHandler) GetMessages(c echo.Context) error {
	userID := c.Get("uid").(string)

	peer := c.QueryParam("peer")
	if peer == "" {
		return response.Error(c, errors.BadRequest("peer query parameter is required", nil))
	}

	limit := 50
	offset := 0

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	messages, total, err := h.messageUseCase.History(c.Request().Context(), userID, peer, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, messages, total, limit, offset)
}

// GetRecent returns the caller's recent-conversation entries, newest first.
func (h *MessageHandler) GetRecent(c echo.Context) error {
	userID := c.Get("uid").(string)

	entries, err := h.messageUseCase.Recent(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, entries)
}
