package services

import (
	"math"

	"github.com/iwsanren/comp47360-team9/models"
)

const (
	// HighTrafficThreshold marks zone/hour slices whose historical p75 sits
	// in heavy-demand territory.
	HighTrafficThreshold = 200.0

	// CorrectionFactor counteracts the taxi model's systematic
	// under-prediction in those high-traffic slices.
	CorrectionFactor = 1.412
)

// Classify maps a value onto its band's percentile thresholds. Every
// threshold is an exclusive upper bound: a value equal to a threshold lands
// in the band above it.
//
// A NaN value means the prediction itself is undefined and returns NoData.
// A nil band means no historical row exists for the slice; that is a known
// data gap, not a failed prediction, and falls back to Moderate.
func Classify(value float64, band *models.PercentileBand) models.Level {
	if math.IsNaN(value) {
		return models.NoData
	}
	if band == nil {
		return models.Moderate
	}
	switch {
	case value < band.P10:
		return models.VeryQuiet
	case value < band.P25:
		return models.Quiet
	case value < band.P50:
		return models.Moderate
	case value < band.P75:
		return models.Busy
	case value < band.P90:
		return models.VeryBusy
	default:
		return models.ExtremelyBusy
	}
}

// CorrectTaxi applies the documented under-prediction correction: only when
// the slice is historically high-traffic (p75 above the threshold) and the
// raw prediction still falls below the threshold.
func CorrectTaxi(raw float64, band *models.PercentileBand) float64 {
	if band == nil {
		return raw
	}
	if band.P75 > HighTrafficThreshold && raw < HighTrafficThreshold {
		return raw * CorrectionFactor
	}
	return raw
}

// NormalisedBusyness positions a combined raw value within the band's
// historical min/max range, clamped to [0,1]. A degenerate range (max <= min)
// yields the midpoint 0.5. Returns nil when the band is missing or carries
// no range data.
func NormalisedBusyness(combined float64, band *models.PercentileBand) *float64 {
	if band == nil || !band.HasMinMax {
		return nil
	}
	v := 0.5
	if band.Max > band.Min {
		v = (combined - band.Min) / (band.Max - band.Min)
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
	}
	return &v
}
