package services

import (
	"math"
	"testing"

	"github.com/iwsanren/comp47360-team9/models"
)

func TestFuseBothPresent(t *testing.T) {
	score, level := Fuse(models.VeryBusy, models.Busy) // taxi=4, subway=3

	want := 0.7*3 + 0.3*4
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", score, want)
	}
	if level != models.Busy { // round(3.3) = 3
		t.Errorf("level = %v, want Busy", level)
	}
}

func TestFuseSubwayHeavyWeighting(t *testing.T) {
	score, level := Fuse(models.VeryQuiet, models.ExtremelyBusy) // 0.7*5 = 3.5

	if math.Abs(score-3.5) > 1e-9 {
		t.Errorf("score = %v, want 3.5", score)
	}
	if level != models.VeryBusy { // round(3.5) = 4
		t.Errorf("level = %v, want VeryBusy", level)
	}
}

// A single present score passes through undiluted.
func TestFuseOnlyTaxi(t *testing.T) {
	score, level := Fuse(models.Busy, models.NoData)

	if score != 3 {
		t.Errorf("score = %v, want 3", score)
	}
	if level != models.Busy {
		t.Errorf("level = %v, want Busy", level)
	}
}

func TestFuseOnlySubway(t *testing.T) {
	score, level := Fuse(models.NoData, models.ExtremelyBusy)

	if score != 5 {
		t.Errorf("score = %v, want 5", score)
	}
	if level != models.ExtremelyBusy {
		t.Errorf("level = %v, want ExtremelyBusy", level)
	}
}

func TestFuseBothMissing(t *testing.T) {
	score, level := Fuse(models.NoData, models.NoData)

	if score != FallbackScore {
		t.Errorf("score = %v, want %v", score, FallbackScore)
	}
	if level != models.Moderate {
		t.Errorf("level = %v, want Moderate", level)
	}
}

func TestLevelLabels(t *testing.T) {
	tests := []struct {
		level models.Level
		want  string
	}{
		{models.VeryQuiet, "very quiet"},
		{models.Quiet, "quiet"},
		{models.Moderate, "normal"},
		{models.Busy, "busy"},
		{models.VeryBusy, "very busy"},
		{models.ExtremelyBusy, "extremely busy"},
		{models.NoData, "No Data"},
	}
	for _, tt := range tests {
		if got := tt.level.Label(); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevelFromScoreClamps(t *testing.T) {
	if got := models.LevelFromScore(-3); got != models.VeryQuiet {
		t.Errorf("LevelFromScore(-3) = %v, want VeryQuiet", got)
	}
	if got := models.LevelFromScore(9); got != models.ExtremelyBusy {
		t.Errorf("LevelFromScore(9) = %v, want ExtremelyBusy", got)
	}
}
