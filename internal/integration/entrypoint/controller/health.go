// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) bool

// HealthController handles health check endpoints.
type HealthController struct {
	database HealthChecker
	cache    HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil cache checker reports the cache as disabled.
func NewHealthController(database, cache HealthChecker) *HealthController {
	return &HealthController{database: database, cache: cache}
}

// Check handles GET /health requests.
// The API stays "ok" without a cache; a lost database degrades it.
func (h *HealthController) Check(c *gin.Context) {
	ctx := c.Request.Context()

	dbStatus := "disconnected"
	if h.database != nil && h.database(ctx) {
		dbStatus = "connected"
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "disconnected"
		if h.cache(ctx) {
			cacheStatus = "connected"
		}
	}

	status := "ok"
	if dbStatus != "connected" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Cache:     cacheStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
