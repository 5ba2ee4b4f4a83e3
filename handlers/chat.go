package handlers

import (
	"errors"
	"net/http"

	"spacetact/middleware"
	"spacetact/models"
	"spacetact/services/chat"
	"spacetact/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes ChatService over HTTP.
type ChatHandler struct {
	Service chat.ChatService
}

func NewChatHandler(service chat.ChatService) *ChatHandler {
	return &ChatHandler{Service: service}
}

// OpenChat returns the transcript for the caller's session. An optional seed
// is sent as the first user message, which is how a menu pick opens the chat.
func (h *ChatHandler) OpenChat(c *gin.Context) {
	var req models.OpenChatRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid_request", "Invalid request", err.Error())
			return
		}
	}

	view, err := h.Service.OpenChat(c.Request.Context(), middleware.SessionID(c), req.Seed)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_request", "Message text is required", err.Error())
		return
	}

	outcome, err := h.Service.SendMessage(c.Request.Context(), middleware.SessionID(c), req.Text)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *ChatHandler) EndSession(c *gin.Context) {
	view, err := h.Service.EndSession(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ChatHandler) Services(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.Service.Services()})
}

func (h *ChatHandler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		utils.JSONError(c, http.StatusBadRequest, "empty_message", "Message text is required", "")
	case errors.Is(err, chat.ErrTurnInFlight):
		utils.JSONError(c, http.StatusConflict, "turn_in_flight", "Still answering your previous message", "")
	default:
		getLogger(c).Error("Chat request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal", "Internal Server Error", "")
	}
}
