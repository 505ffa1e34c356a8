package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"realestate-agent/internal/service"
)

// ConversationHandler exposes session histories
type ConversationHandler struct {
	agent  *service.AgentService
	logger *slog.Logger
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(agent *service.AgentService, logger *slog.Logger) *ConversationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationHandler{
		agent:  agent,
		logger: logger,
	}
}

// Get handles GET /api/v1/conversations/:sessionId
func (h *ConversationHandler) Get(c *gin.Context) {
	conv, err := h.agent.GetConversation(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to fetch conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"conversation": conv,
	})
}

// Delete handles DELETE /api/v1/conversations/:sessionId
func (h *ConversationHandler) Delete(c *gin.Context) {
	if err := h.agent.ClearConversation(c.Request.Context(), c.Param("sessionId")); err != nil {
		respondServiceError(c, h.logger, err, "Failed to clear conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Conversation cleared",
	})
}
