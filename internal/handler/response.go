package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"realestate-agent/internal/model"
	"realestate-agent/internal/service"
)

const apologyMessage = "I'm experiencing some technical difficulties. Please try again."

func respondError(c *gin.Context, status int, short, message string) {
	c.JSON(status, model.ErrorResponse{
		Success: false,
		Error:   short,
		Message: message,
	})
}

// respondServiceError maps service failures to status codes. Internal
// details are logged, never returned.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, short string) {
	switch {
	case errors.Is(err, service.ErrQueryRequired):
		respondError(c, http.StatusBadRequest, "Query is required", "")
	case errors.Is(err, service.ErrPropertyNotFound):
		respondError(c, http.StatusNotFound, "Property not found", "")
	case errors.Is(err, service.ErrInvalidProperty):
		respondError(c, http.StatusBadRequest, "Invalid property", err.Error())
	default:
		logger.Error(short,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err)
		respondError(c, http.StatusInternalServerError, short, apologyMessage)
	}
}
