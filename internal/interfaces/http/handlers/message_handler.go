package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/interfaces/http/middleware"
	"ykri.backend/internal/interfaces/http/response"
	"ykri.backend/internal/usecases"
)

// MessageHandler handles chat and notification endpoints
type MessageHandler struct {
	messageUsecase *usecases.MessageUsecase
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageUsecase *usecases.MessageUsecase) *MessageHandler {
	return &MessageHandler{messageUsecase: messageUsecase}
}

// Send sends a chat message from the authenticated user
// POST /api/v1/messages
func (h *MessageHandler) Send(c *gin.Context) {
	senderID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	message, err := h.messageUsecase.Send(c.Request.Context(), senderID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, message)
}

// List returns every message the authenticated user sent or received
// GET /api/v1/messages
func (h *MessageHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	messages, err := h.messageUsecase.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, messages)
}

// Conversation returns the thread with another user and marks incoming
// messages read
// GET /api/v1/messages/conversation/:userId
func (h *MessageHandler) Conversation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	otherID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	messages, err := h.messageUsecase.GetConversation(c.Request.Context(), userID, otherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, messages)
}

// Conversations returns the per-partner rollup with unread counts
// GET /api/v1/messages/conversations
func (h *MessageHandler) Conversations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	conversations, err := h.messageUsecase.Conversations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, conversations)
}

// MarkRead flags one received message as read
// PATCH /api/v1/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid message id"))
		return
	}

	if err := h.messageUsecase.MarkRead(c.Request.Context(), userID, messageID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "marked as read"})
}
