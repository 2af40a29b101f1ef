package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/iwsanren/comp47360-team9/config"
	"github.com/iwsanren/comp47360-team9/models"
	"github.com/iwsanren/comp47360-team9/services"
	"github.com/iwsanren/comp47360-team9/weather"
)

type stubPipeline struct {
	ready  bool
	result *models.FeatureCollection
	err    error
	gotTS  *int64
	called bool
}

func (s *stubPipeline) PredictAll(ctx context.Context, ts *int64) (*models.FeatureCollection, error) {
	s.called = true
	s.gotTS = ts
	return s.result, s.err
}

func (s *stubPipeline) Ready() bool { return s.ready }

func disabledCache() *services.CacheService {
	return services.NewCacheService(config.RedisConfig{}, slog.Default())
}

func predictRouter(p BusynessService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPredictHandler(p, disabledCache())
	r.POST("/predict-all", h.PredictAll)
	return r
}

func doPredict(t *testing.T, r *gin.Engine, query string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/predict-all"+query, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return w, body
}

func okCollection() *models.FeatureCollection {
	return &models.FeatureCollection{
		Type:       "FeatureCollection",
		Properties: models.CollectionProps{Timestamp: "2025-07-25 12:00", Weather: "Clear"},
		Features:   []models.Feature{},
	}
}

func TestPredictAllSuccess(t *testing.T) {
	stub := &stubPipeline{ready: true, result: okCollection()}
	w, body := doPredict(t, predictRouter(stub), "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body["type"] != "FeatureCollection" {
		t.Errorf("type = %v, want FeatureCollection", body["type"])
	}
	if stub.gotTS != nil {
		t.Errorf("ts = %v, want nil for a request without timestamp", stub.gotTS)
	}
}

func TestPredictAllWithTimestamp(t *testing.T) {
	stub := &stubPipeline{ready: true, result: okCollection()}
	w, _ := doPredict(t, predictRouter(stub), "?timestamp=1753444800")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if stub.gotTS == nil || *stub.gotTS != 1753444800 {
		t.Errorf("ts = %v, want 1753444800", stub.gotTS)
	}
}

func TestPredictAllBadTimestamp(t *testing.T) {
	stub := &stubPipeline{ready: true, result: okCollection()}
	w, _ := doPredict(t, predictRouter(stub), "?timestamp=tomorrow")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if stub.called {
		t.Error("pipeline should not run for an unparseable timestamp")
	}
}

func TestPredictAllNotReady(t *testing.T) {
	w, body := doPredict(t, predictRouter(&stubPipeline{ready: false}), "")

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
	if body["error"] != "Service reference data not loaded" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestPredictAllWeatherUnavailable(t *testing.T) {
	stub := &stubPipeline{ready: true, err: weather.ErrUnavailable}
	w, body := doPredict(t, predictRouter(stub), "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if body["error"] != "Failed to fetch weather data" {
		t.Errorf("error = %q, want %q", body["error"], "Failed to fetch weather data")
	}
}

func TestPredictAllNoForecastEntry(t *testing.T) {
	stub := &stubPipeline{ready: true, err: weather.ErrNoForecastEntry}
	w, body := doPredict(t, predictRouter(stub), "?timestamp=1753444800")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if body["error"] != "No weather data for specified time" {
		t.Errorf("error = %q, want %q", body["error"], "No weather data for specified time")
	}
}
