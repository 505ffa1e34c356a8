package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"realestate-agent/internal/model"
	"realestate-agent/internal/service"
)

// AgentHandler handles the conversational agent endpoints
type AgentHandler struct {
	agent  *service.AgentService
	logger *slog.Logger
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agent *service.AgentService, logger *slog.Logger) *AgentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AgentHandler{
		agent:  agent,
		logger: logger,
	}
}

// Query handles POST /api/v1/agent/query
func (h *AgentHandler) Query(c *gin.Context) {
	var req model.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	response, err := h.agent.Query(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to process query")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ContactOwner handles POST /api/v1/agent/contact-owner
func (h *AgentHandler) ContactOwner(c *gin.Context) {
	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if req.PropertyID == "" {
		respondError(c, http.StatusBadRequest, "Property ID is required", "")
		return
	}

	response, err := h.agent.ContactOwner(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to contact property owner")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Recommendations handles POST /api/v1/agent/recommendations
func (h *AgentHandler) Recommendations(c *gin.Context) {
	var req model.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if req.Budget < 0 {
		respondError(c, http.StatusBadRequest, "Invalid budget", "Budget must not be negative")
		return
	}
	if req.PropertyType != "" && !req.PropertyType.Valid() {
		respondError(c, http.StatusBadRequest, "Invalid property type", "Unknown property type: "+string(req.PropertyType))
		return
	}

	response, err := h.agent.Recommendations(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to get recommendations")
		return
	}

	c.JSON(http.StatusOK, response)
}
