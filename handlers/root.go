package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ServiceName    = "Manhattan My Way ML API"
	ServiceVersion = "2.0.0"
)

// Root serves service metadata for API discovery.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": ServiceName,
		"version": ServiceVersion,
		"endpoints": gin.H{
			"/predict-all": "POST - Fused busyness predictions for all zones (optional ?timestamp=<epoch seconds>)",
			"/health":      "GET - Health check endpoint",
			"/metrics":     "GET - Prometheus metrics",
		},
		"status": "running",
	})
}
