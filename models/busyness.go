package models

// Level is an ordinal busyness classification derived from a value's position
// in its zone/hour/day historical percentile band.
type Level int

const (
	VeryQuiet Level = iota
	Quiet
	Moderate
	Busy
	VeryBusy
	ExtremelyBusy
)

// NoData marks a level that could not be computed (failed pipeline, NaN
// input). It is distinct from VeryQuiet so clients can tell "did not compute"
// from "computed as very quiet".
const NoData Level = -1

var levelLabels = [...]string{
	"very quiet", "quiet", "normal", "busy", "very busy", "extremely busy",
}

// Label returns the client-facing label for the level.
func (l Level) Label() string {
	if l < VeryQuiet || l > ExtremelyBusy {
		return "No Data"
	}
	return levelLabels[l]
}

// Score returns the level's ordinal score 0..5, or -1 for NoData.
func (l Level) Score() int { return int(l) }

// LevelFromScore maps an ordinal score back to a level, clamping to the
// valid 0..5 range.
func LevelFromScore(score int) Level {
	if score < int(VeryQuiet) {
		return VeryQuiet
	}
	if score > int(ExtremelyBusy) {
		return ExtremelyBusy
	}
	return Level(score)
}

// BandKey identifies one historical percentile slice.
type BandKey struct {
	ZoneID    int
	Hour      int // 0-23
	DayOfWeek int // 0=Monday .. 6=Sunday
}

// PercentileBand holds the ordered percentile thresholds for one
// (zone, hour, day-of-week) slice, computed offline from historical data.
// Min/Max are populated for taxi bands only and back the normalised
// busyness output.
type PercentileBand struct {
	ZoneID    int
	Hour      int
	DayOfWeek int
	P10       float64
	P25       float64
	P50       float64
	P75       float64
	P90       float64
	Min       float64
	Max       float64
	HasMinMax bool
}
