package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRoot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Root)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["service"] != ServiceName {
		t.Errorf("service = %v, want %q", body["service"], ServiceName)
	}
	if body["version"] != ServiceVersion {
		t.Errorf("version = %v, want %q", body["version"], ServiceVersion)
	}
	if body["status"] != "running" {
		t.Errorf("status = %v, want running", body["status"])
	}

	endpoints, ok := body["endpoints"].(map[string]any)
	if !ok {
		t.Fatalf("endpoints missing: %v", body)
	}
	for _, path := range []string{"/predict-all", "/health", "/metrics"} {
		if _, ok := endpoints[path]; !ok {
			t.Errorf("endpoint %s not advertised", path)
		}
	}
}
