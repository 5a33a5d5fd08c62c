package progress

import "math"

// Levels follow a radical growth curve: each level costs quadratically
// more XP, the usual diminishing-return pacing for gamified systems.
//
//	level = floor(sqrt(xp/100)) + 1, capped at MaxLevel
const (
	MaxLevel  = 100
	levelBase = 100 // XP cost scale of the curve
)

// LevelForXP maps cumulative XP to a level in [1, MaxLevel].
// Negative XP is treated as 0.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := int(math.Floor(math.Sqrt(float64(xp)/levelBase))) + 1
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// LevelFloorXP returns the XP required to just reach the given level.
func LevelFloorXP(level int) int {
	return (level - 1) * (level - 1) * levelBase
}

// LevelCeilingXP returns the XP required for the level after the given one.
func LevelCeilingXP(level int) int {
	return level * level * levelBase
}

// ProgressFraction returns the progress-bar fraction within the current
// level, in [0, 1]. At the level cap there is no next threshold, so the
// bar is always full; this also keeps the zero-width band at the cap from
// ever dividing by zero.
func ProgressFraction(xp int) float64 {
	if xp < 0 {
		xp = 0
	}
	level := LevelForXP(xp)
	if level >= MaxLevel {
		return 1.0
	}
	floor := LevelFloorXP(level)
	ceiling := LevelCeilingXP(level)
	return float64(xp-floor) / float64(ceiling-floor)
}

// XPToNextLevel returns the XP still missing for the next level,
// 0 at the cap.
func XPToNextLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := LevelForXP(xp)
	if level >= MaxLevel {
		return 0
	}
	return LevelCeilingXP(level) - xp
}
