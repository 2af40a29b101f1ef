package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iwsanren/comp47360-team9/config"
)

// HealthIntrospector exposes the readiness facts /health reports.
type HealthIntrospector interface {
	Ready() bool
	ZonesCount() int
}

type HealthHandler struct {
	pipeline HealthIntrospector
	cfg      *config.Config
}

func NewHealthHandler(pipeline HealthIntrospector, cfg *config.Config) *HealthHandler {
	return &HealthHandler{pipeline: pipeline, cfg: cfg}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if h.pipeline == nil || !h.pipeline.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"error":     "Model not loaded",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                 "healthy",
		"timestamp":              time.Now().Format(time.RFC3339),
		"model_loaded":           true,
		"zones_count":            h.pipeline.ZonesCount(),
		"environment":            h.cfg.Server.Environment,
		"weather_api_configured": h.cfg.Weather.Configured(),
	})
}
