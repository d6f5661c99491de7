package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngkart/backend/internal/infrastructure/persistence"
)

// SystemHandler serves health and readiness probes.
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
	env     string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *persistence.Database, appName, env string) *SystemHandler {
	return &SystemHandler{db: db, appName: appName, env: env}
}

// Health handles GET /health. It reports liveness without touching
// downstream dependencies.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"app":    h.appName,
		"env":    h.env,
		"time":   time.Now().UTC(),
	})
}

// Ready handles GET /ready. It pings the database so load balancers
// stop routing before the pool is usable.
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "database unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
