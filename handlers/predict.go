package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iwsanren/comp47360-team9/models"
	"github.com/iwsanren/comp47360-team9/services"
	"github.com/iwsanren/comp47360-team9/weather"
)

// BusynessService is the pipeline capability the handler consumes.
type BusynessService interface {
	PredictAll(ctx context.Context, ts *int64) (*models.FeatureCollection, error)
	Ready() bool
}

type PredictHandler struct {
	pipeline BusynessService
	cache    *services.CacheService
}

func NewPredictHandler(pipeline BusynessService, cache *services.CacheService) *PredictHandler {
	return &PredictHandler{pipeline: pipeline, cache: cache}
}

// PredictAll serves the fused busyness FeatureCollection. An optional
// timestamp query selects a forecast slot; absent means "now".
func (h *PredictHandler) PredictAll(c *gin.Context) {
	if h.pipeline == nil || !h.pipeline.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service reference data not loaded"})
		return
	}

	var ts *int64
	if tsStr := c.Query("timestamp"); tsStr != "" {
		parsed, err := strconv.ParseInt(tsStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp parameter, must be epoch seconds"})
			return
		}
		ts = &parsed
	}

	cacheKey := cacheKeyFor(ts)
	var cached models.FeatureCollection
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Type != "" {
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := h.pipeline.PredictAll(c.Request.Context(), ts)
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrNoForecastEntry):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No weather data for specified time"})
		case errors.Is(err, weather.ErrUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weather data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	go h.cache.Set(context.Background(), cacheKey, result, 60*time.Second)

	c.JSON(http.StatusOK, result)
}

func cacheKeyFor(ts *int64) string {
	if ts != nil {
		return fmt.Sprintf("predict-all:%d", *ts)
	}
	return "predict-all:now"
}
