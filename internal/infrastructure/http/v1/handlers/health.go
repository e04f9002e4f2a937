package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"offerstock/internal/infrastructure/storage/postgres"
)

// Version is reported by /health/info. Overridden at build time.
var Version = "0.1.0"

// DatabaseProbe is the part of the pool health checks need.
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	Stats() postgres.PoolStats
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	db DatabaseProbe
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db DatabaseProbe) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live handles liveness probe.
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"database": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"database": "healthy",
		},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":      "offerstock",
		"version":  Version,
		"database": h.db.Stats(),
	})
}
