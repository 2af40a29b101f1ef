package models

import "github.com/iwsanren/comp47360-team9/geometry"

// FeatureCollection is the /predict-all response body.
type FeatureCollection struct {
	Type       string           `json:"type"`
	Properties CollectionProps  `json:"properties"`
	Features   []Feature        `json:"features"`
}

// CollectionProps carries request-level context shared by all features.
type CollectionProps struct {
	Timestamp string `json:"timestamp"`
	Weather   string `json:"weather"`
	IsHoliday bool   `json:"is_holiday"`
}

// Feature is one zone's fused prediction joined with its geometry.
type Feature struct {
	Type       string            `json:"type"`
	Properties ZoneProps         `json:"properties"`
	Geometry   geometry.Geometry `json:"geometry"`
}

// ZoneProps holds zone metadata plus the per-model and fused busyness
// outputs. Scores are pointers so a failed pipeline is reported as absent,
// never as a silent zero.
type ZoneProps struct {
	PULocationID       int      `json:"PULocationID"`
	Zone               string   `json:"zone"`
	Borough            string   `json:"borough"`
	CentroidLat        float64  `json:"centroid_lat"`
	CentroidLon        float64  `json:"centroid_lon"`
	ShapeArea          float64  `json:"Shape_Area"`
	ShapeLeng          float64  `json:"Shape_Leng"`
	TaxiLevel          string   `json:"taxi_level"`
	TaxiScore          *int     `json:"taxi_score"`
	SubwayLevel        string   `json:"subway_level"`
	SubwayScore        *int     `json:"subway_score"`
	CombinedScore      float64  `json:"combined_score"`
	CombinedLevel      string   `json:"combined_level"`
	NormalisedBusyness *float64 `json:"normalised_busyness,omitempty"`
}
