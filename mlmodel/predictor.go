// Package mlmodel defines the regression-model boundary. Models are opaque:
// a batch of feature rows goes in, one float per row comes out. Production
// inference runs in an ONNX serving sidecar reached over HTTP.
package mlmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Predictor is the capability both pipelines consume. Implementations must
// return exactly one prediction per input row.
type Predictor interface {
	Predict(ctx context.Context, rows [][]float64) ([]float64, error)
}

// HTTPPredictor calls a model-serving endpoint that accepts
// {"inputs": [[...], ...]} and answers {"predictions": [...]}.
type HTTPPredictor struct {
	url  string
	http *http.Client
}

func NewHTTPPredictor(url string, timeout time.Duration) *HTTPPredictor {
	return &HTTPPredictor{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Inputs [][]float64 `json:"inputs"`
}

type predictResponse struct {
	Predictions []float64 `json:"predictions"`
}

func (p *HTTPPredictor) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	body, err := json.Marshal(predictRequest{Inputs: rows})
	if err != nil {
		return nil, fmt.Errorf("encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model server call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model server returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode inference response: %w", err)
	}
	if len(out.Predictions) != len(rows) {
		return nil, fmt.Errorf("model server returned %d predictions for %d rows",
			len(out.Predictions), len(rows))
	}
	return out.Predictions, nil
}

// PredictorFunc adapts a function to the Predictor interface.
type PredictorFunc func(ctx context.Context, rows [][]float64) ([]float64, error)

func (f PredictorFunc) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	return f(ctx, rows)
}
