package httpHandler

import (
	"context"
	"net/http"

	"marketplace-server/entities"

	"github.com/gin-gonic/gin"
)

type MessageService interface {
	GetMessage(ctx context.Context, id string) (*entities.Message, error)
	GetAllMessages(ctx context.Context) ([]entities.Message, error)
	GetUserMessages(ctx context.Context, userID string) ([]entities.Message, error)
	GetSentMessages(ctx context.Context, userID string) ([]entities.Message, error)
	GetReceivedMessages(ctx context.Context, userID string) ([]entities.Message, error)
	DeleteMessage(ctx context.Context, id string) error
}

// MessageSubmitter persists a draft and pushes it to connected channels.
type MessageSubmitter interface {
	Submit(ctx context.Context, draft entities.MessageDraft) (*entities.Message, error)
}

type MessageHandler struct {
	messages MessageService
	relay    MessageSubmitter
}

func NewMessageHandler(messages MessageService, relay MessageSubmitter) *MessageHandler {
	return &MessageHandler{messages: messages, relay: relay}
}

// CreateMessage handles POST /api/messages. The message goes through the
// same relay as websocket traffic, so connected participants receive it.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var draft entities.MessageDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := h.relay.Submit(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    msg,
	})
}

// GetMessage handles GET /api/messages/:id
func (h *MessageHandler) GetMessage(c *gin.Context) {
	msg, err := h.messages.GetMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": msg})
}

// GetAllMessages handles GET /api/messages
func (h *MessageHandler) GetAllMessages(c *gin.Context) {
	h.list(c, func(ctx context.Context) ([]entities.Message, error) {
		return h.messages.GetAllMessages(ctx)
	})
}

// GetUserMessages handles GET /api/messages/user/:id
func (h *MessageHandler) GetUserMessages(c *gin.Context) {
	h.list(c, func(ctx context.Context) ([]entities.Message, error) {
		return h.messages.GetUserMessages(ctx, c.Param("id"))
	})
}

// GetSentMessages handles GET /api/messages/user/:id/sent
func (h *MessageHandler) GetSentMessages(c *gin.Context) {
	h.list(c, func(ctx context.Context) ([]entities.Message, error) {
		return h.messages.GetSentMessages(ctx, c.Param("id"))
	})
}

// GetReceivedMessages handles GET /api/messages/user/:id/received
func (h *MessageHandler) GetReceivedMessages(c *gin.Context) {
	h.list(c, func(ctx context.Context) ([]entities.Message, error) {
		return h.messages.GetReceivedMessages(ctx, c.Param("id"))
	})
}

func (h *MessageHandler) list(c *gin.Context, fetch func(ctx context.Context) ([]entities.Message, error)) {
	msgs, err := fetch(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": msgs, "count": len(msgs)})
}

// DeleteMessage handles DELETE /api/messages/:id
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	if err := h.messages.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
