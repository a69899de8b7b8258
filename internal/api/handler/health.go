package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/mememania/internal/mcp"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	registry *mcp.Registry
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(registry *mcp.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Health reports liveness and the number of registered tools. It needs no auth.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"tools":  h.registry.Count(),
	})
}
