package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	zonePredictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busyness_api_zone_predictions_total",
		Help: "Total number of per-zone fused predictions produced.",
	})
	taxiInferenceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busyness_api_taxi_inference_failures_total",
		Help: "Per-zone taxi model failures substituted with 0.0.",
	})
	subwayInferenceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busyness_api_subway_inference_failures_total",
		Help: "Subway model batch failures (subway levels reported as No Data).",
	})
	weatherFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busyness_api_weather_fetch_failures_total",
		Help: "Weather provider fetch failures.",
	})
	pipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "busyness_api_pipeline_duration_seconds",
		Help:    "Duration of a full predict-all pipeline run.",
		Buckets: []float64{0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
	})
)
