package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iwsanren/comp47360-team9/logging"
)

const requestIDHeader = "X-Request-ID"

// RequestTracking assigns each request a correlation id (honoring an
// incoming X-Request-ID), echoes it in the response, stashes a
// request-scoped logger in the context, and logs completion with duration.
func RequestTracking(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = "req_" + uuid.NewString()[:8]
		}
		c.Header(requestIDHeader, requestID)

		reqLogger := logger.With("request_id", requestID)
		c.Request = c.Request.WithContext(
			logging.WithContext(c.Request.Context(), reqLogger))

		start := time.Now()
		c.Next()

		reqLogger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
		)
	}
}
