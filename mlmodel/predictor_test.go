package mlmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPPredictorRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}

		var req struct {
			Inputs [][]float64 `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Inputs) != 2 || req.Inputs[0][0] != 1.5 {
			t.Errorf("inputs = %v", req.Inputs)
		}

		fmt.Fprint(w, `{"predictions": [42.0, 17.5]}`)
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, 2*time.Second)
	preds, err := p.Predict(context.Background(), [][]float64{{1.5, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if len(preds) != 2 || preds[0] != 42.0 || preds[1] != 17.5 {
		t.Errorf("predictions = %v, want [42 17.5]", preds)
	}
}

func TestHTTPPredictorServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, 2*time.Second)
	if _, err := p.Predict(context.Background(), [][]float64{{1}}); err == nil {
		t.Error("500 response should be an error")
	}
}

// A prediction count that disagrees with the row count means the response
// cannot be matched back to zones and must be rejected.
func TestHTTPPredictorLengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"predictions": [1.0]}`)
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, 2*time.Second)
	if _, err := p.Predict(context.Background(), [][]float64{{1}, {2}}); err == nil {
		t.Error("length mismatch should be an error")
	}
}

func TestHTTPPredictorUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := NewHTTPPredictor(srv.URL, time.Second)
	if _, err := p.Predict(context.Background(), [][]float64{{1}}); err == nil {
		t.Error("unreachable server should be an error")
	}
}

func TestPredictorFunc(t *testing.T) {
	f := PredictorFunc(func(ctx context.Context, rows [][]float64) ([]float64, error) {
		return []float64{float64(len(rows))}, nil
	})
	preds, err := f.Predict(context.Background(), [][]float64{{1}, {2}, {3}})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if preds[0] != 3 {
		t.Errorf("prediction = %v, want 3", preds[0])
	}
}
