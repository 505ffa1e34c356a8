package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"realestate-agent/internal/model"
	"realestate-agent/internal/service"
)

// PropertyHandler handles catalog endpoints
type PropertyHandler struct {
	agent  *service.AgentService
	logger *slog.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(agent *service.AgentService, logger *slog.Logger) *PropertyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PropertyHandler{
		agent:  agent,
		logger: logger,
	}
}

// List handles GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	filter, msg := filterFromQuery(c)
	if msg != "" {
		respondError(c, http.StatusBadRequest, "Invalid filter", msg)
		return
	}

	properties, err := h.agent.ListProperties(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to fetch properties")
		return
	}

	c.JSON(http.StatusOK, model.PropertyListResponse{
		Success:    true,
		Count:      len(properties),
		Properties: properties,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.agent.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to fetch property")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"property": property,
	})
}

// Create handles POST /api/v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var property model.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	property.ID = ""
	property.IsAvailable = true

	if err := h.agent.CreateProperty(c.Request.Context(), &property); err != nil {
		respondServiceError(c, h.logger, err, "Failed to create property")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"property": property,
	})
}

// filterFromQuery builds an explicit filter from query-string parameters.
// A non-empty message reports the first invalid parameter.
func filterFromQuery(c *gin.Context) (model.Filter, string) {
	filter := model.NewFilter()

	if v := c.Query("type"); v != "" {
		t := model.PropertyType(strings.ToLower(v))
		if !t.Valid() {
			return filter, "Unknown property type: " + v
		}
		filter.Type = &t
	}

	if v := strings.TrimSpace(c.Query("location")); v != "" {
		filter.Location = &v
	}

	if v := c.Query("maxPrice"); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil || price <= 0 {
			return filter, "maxPrice must be a positive integer"
		}
		filter.Price = &model.PriceCeiling{LTE: price}
	}

	if v := c.Query("bedrooms"); v != "" {
		beds, err := strconv.Atoi(v)
		if err != nil || beds < 0 {
			return filter, "bedrooms must be a non-negative integer"
		}
		filter.Bedrooms = &beds
	}

	if v := c.Query("forSale"); v != "" {
		forSale, err := strconv.ParseBool(v)
		if err != nil {
			return filter, "forSale must be true or false"
		}
		filter.ForSale = &forSale
	}

	return filter, ""
}
