package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/moodlog-backend/internal/platform/gemini"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type HealthHandler struct {
	log    *logger.Logger
	db     *gorm.DB
	client gemini.Client
}

func NewHealthHandler(log *logger.Logger, db *gorm.DB, client gemini.Client) *HealthHandler {
	return &HealthHandler{log: log.With("handler", "HealthHandler"), db: db, client: client}
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			h.log.Warn("Database health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /healthcheck/suggestions sends a one-word prompt upstream.
func (h *HealthHandler) Suggestions(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": "suggestion client not configured"})
		return
	}
	ok, err := h.client.Ping(c.Request.Context())
	if err != nil || !ok {
		body := gin.H{"status": "down", "model": h.client.Model()}
		if err != nil {
			body["error"] = err.Error()
			if gemini.IsConfigurationError(err) {
				body["configured"] = false
			}
		}
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": h.client.Model()})
}
