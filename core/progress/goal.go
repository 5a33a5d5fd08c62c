package progress

import "errors"

var (
	// errors
	ErrNotFound          = errors.New("progress record not found")
	ErrGoalNotFound      = errors.New("goal not found")
	ErrNegativeIncrement = errors.New("increment cannot be negative")
	ErrNegativeXP        = errors.New("xp amount cannot be negative")
	ErrInvalidDate       = errors.New("invalid date")
)

// Normalized rolls the goal across any elapsed day boundary:
// the streak extends only when yesterday's daily target was met, breaks
// otherwise, and the daily counter restarts. A goal whose LastUpdated
// already equals today is returned unchanged, so the first write after
// creation never counts as a day transition.
func (g Goal) Normalized(today Date) Goal {
	if g.LastUpdated == today {
		return g
	}
	if g.LastUpdated.IsZero() || !g.LastUpdated.Before(today) {
		// never touched, or a clock running backwards: normalize the date only
		g.LastUpdated = today
		g.DailyProgress = 0
		return g
	}

	// a day has elapsed since the last write
	if g.LastUpdated.Next() == today && g.DailyTargetMet() {
		g.Streak++
	} else if g.Streak > 0 {
		// target unmet, or more than one day skipped: no partial credit
		g.Streak = 0
	}
	g.DailyProgress = 0
	g.LastUpdated = today
	return g
}

// RecordDailyProgress applies an increment to the goal for the given date.
// Day-transition rules are evaluated first, then the daily counter is
// incremented (clamped to the daily target) and the overall counter is
// incremented (clamped to the target). Completion is a one-way latch.
func RecordDailyProgress(g Goal, increment int, today Date) (Goal, error) {
	if increment < 0 {
		return Goal{}, ErrNegativeIncrement
	}
	if !today.Valid() {
		return Goal{}, ErrInvalidDate
	}

	g = g.Normalized(today)

	g.DailyProgress += increment
	if g.DailyProgress > g.DailyTarget {
		g.DailyProgress = g.DailyTarget
	}

	if !g.Completed {
		g.Current += increment
		if g.Current >= g.Target {
			g.Current = g.Target
			g.Completed = true
		}
	}
	return g, nil
}
