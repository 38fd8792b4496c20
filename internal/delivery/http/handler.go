package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/precocerto/backend/internal/domain"
	"github.com/precocerto/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	comparisons    *usecase.ComparisonService
	requestTimeout time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(comparisons *usecase.ComparisonService, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = 90 * time.Second
	}
	return &Handler{
		comparisons:    comparisons,
		requestTimeout: requestTimeout,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "precocerto-backend",
		"version": "1.0.0",
	})
}

// compareRequest accepts either pre-structured items or (for convenience)
// the raw list text to be parsed first
type compareRequest struct {
	Items  []domain.ShoppingItem `json:"items"`
	Text   string                `json:"text"`
	UserID string                `json:"userId"`
}

// CompareList runs the comparison pipeline for a shopping list
func (h *Handler) CompareList(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	items := req.Items
	if len(items) == 0 && req.Text != "" {
		parsed, err := h.comparisons.ParseList(ctx, req.Text)
		if err != nil {
			h.writeError(c, err)
			return
		}
		items = parsed
	}

	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shopping list items are required"})
		return
	}

	batch, err := h.comparisons.CompareItems(ctx, items, req.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

// parseRequest is the body for the list-parsing endpoint
type parseRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseList converts free-text shopping lists into structured items
func (h *Handler) ParseList(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "list text is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	items, err := h.comparisons.ParseList(ctx, req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// writeError maps pipeline errors onto HTTP statuses. Only input errors and
// whole-pipeline failures ever reach this point; per-item degradation is
// absorbed inside the batch.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrJudgeUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
