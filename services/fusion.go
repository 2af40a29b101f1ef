package services

import (
	"math"

	"github.com/iwsanren/comp47360-team9/models"
)

// Fusion weights: subway ridership is the stronger busyness signal.
const (
	subwayWeight = 0.7
	taxiWeight   = 0.3
)

// FallbackScore is the combined score when neither model produced a level.
const FallbackScore = 2.0 // Moderate

// Fuse combines the two independent classifications into one score and
// level. With both levels present the ordinal scores are blended
// subway-heavy; with one present its score passes through undiluted; with
// neither the result falls back to Moderate. The returned score keeps its
// fractional precision; the level is derived from the nearest integer.
func Fuse(taxi, subway models.Level) (float64, models.Level) {
	taxiOK := taxi != models.NoData
	subwayOK := subway != models.NoData

	var score float64
	switch {
	case taxiOK && subwayOK:
		score = subwayWeight*float64(subway.Score()) + taxiWeight*float64(taxi.Score())
	case taxiOK:
		score = float64(taxi.Score())
	case subwayOK:
		score = float64(subway.Score())
	default:
		score = FallbackScore
	}

	return score, models.LevelFromScore(int(math.Round(score)))
}
