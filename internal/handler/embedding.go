package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"realestate-agent/internal/model"
	"realestate-agent/internal/service"
)

// EmbeddingHandler handles embedding-related HTTP requests
type EmbeddingHandler struct {
	agent      *service.AgentService
	dimensions int
}

// NewEmbeddingHandler creates a new embedding handler
func NewEmbeddingHandler(agent *service.AgentService, dimensions int) *EmbeddingHandler {
	return &EmbeddingHandler{
		agent:      agent,
		dimensions: dimensions,
	}
}

// BatchUpdate handles POST /api/v1/properties/embeddings/batch
func (h *EmbeddingHandler) BatchUpdate(c *gin.Context) {
	var req model.EmbeddingBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if len(req.Embeddings) == 0 {
		respondError(c, http.StatusBadRequest, "No embeddings provided", "")
		return
	}

	for i, item := range req.Embeddings {
		if len(item.Embedding) != h.dimensions {
			respondError(c, http.StatusBadRequest, "Invalid embedding dimension",
				fmt.Sprintf("embedding at index %d has %d values, expected %d", i, len(item.Embedding), h.dimensions))
			return
		}
	}

	success, errs := h.agent.UpdateEmbeddings(c.Request.Context(), req.Embeddings)

	response := model.EmbeddingBatchResponse{
		Success: success,
		Failed:  len(req.Embeddings) - success,
		Errors:  errs,
	}

	if len(errs) > 0 {
		c.JSON(http.StatusPartialContent, response)
	} else {
		c.JSON(http.StatusOK, response)
	}
}
