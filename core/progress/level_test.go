package progress

import (
	"math"
	"testing"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		name string
		xp   int
		want int
	}{
		{name: "zero", xp: 0, want: 1},
		{name: "negative treated as zero", xp: -50, want: 1},
		{name: "just below level 2", xp: 99, want: 1},
		{name: "level 2 threshold", xp: 100, want: 2},
		{name: "just below level 3", xp: 399, want: 2},
		{name: "level 3 threshold", xp: 400, want: 3},
		{name: "level 11", xp: 10000, want: 11},
		{name: "cap floor", xp: LevelFloorXP(MaxLevel), want: 100},
		{name: "beyond cap", xp: 10 * LevelCeilingXP(MaxLevel), want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelForXP(tt.xp); got != tt.want {
				t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
			}
		})
	}
}

func TestLevelForXP_bounds(t *testing.T) {
	prev := 1
	for xp := 0; xp <= LevelCeilingXP(MaxLevel)+1000; xp += 97 {
		level := LevelForXP(xp)
		if level < 1 || level > MaxLevel {
			t.Fatalf("LevelForXP(%d) = %d, out of [1, %d]", xp, level, MaxLevel)
		}
		if level < prev {
			t.Fatalf("LevelForXP(%d) = %d, decreased from %d", xp, level, prev)
		}
		prev = level
	}
}

func TestLevelThresholds_roundTrip(t *testing.T) {
	for level := 1; level < MaxLevel; level++ {
		if got := LevelForXP(LevelFloorXP(level)); got != level {
			t.Errorf("LevelForXP(LevelFloorXP(%d)) = %d", level, got)
		}
		if got := LevelForXP(LevelCeilingXP(level)); got != level+1 {
			t.Errorf("LevelForXP(LevelCeilingXP(%d)) = %d, want %d", level, got, level+1)
		}
	}
}

func TestProgressFraction(t *testing.T) {
	tests := []struct {
		name string
		xp   int
		want float64
	}{
		{name: "level floor", xp: 0, want: 0},
		{name: "level 2 floor", xp: 100, want: 0},
		{name: "halfway through level 1", xp: 50, want: 0.5},
		{name: "cap is always full", xp: LevelFloorXP(MaxLevel), want: 1},
		{name: "beyond cap still full", xp: LevelFloorXP(MaxLevel) + 12345, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressFraction(tt.xp); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ProgressFraction(%d) = %v, want %v", tt.xp, got, tt.want)
			}
		})
	}
}

func TestProgressFraction_staysBelowOneBeforeCap(t *testing.T) {
	for level := 1; level < MaxLevel; level++ {
		xp := LevelCeilingXP(level) - 1
		if frac := ProgressFraction(xp); frac >= 1 {
			t.Errorf("ProgressFraction(%d) = %v, want < 1 at level %d", xp, frac, level)
		}
		if frac := ProgressFraction(LevelFloorXP(level)); frac != 0 {
			t.Errorf("ProgressFraction(LevelFloorXP(%d)) = %v, want 0", level, frac)
		}
	}
}

func TestXPToNextLevel(t *testing.T) {
	if got := XPToNextLevel(0); got != 100 {
		t.Errorf("XPToNextLevel(0) = %d, want 100", got)
	}
	if got := XPToNextLevel(150); got != 250 {
		t.Errorf("XPToNextLevel(150) = %d, want 250", got)
	}
	if got := XPToNextLevel(LevelFloorXP(MaxLevel)); got != 0 {
		t.Errorf("XPToNextLevel at cap = %d, want 0", got)
	}
}
