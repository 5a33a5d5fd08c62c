package progress

import (
	"testing"
)

var (
	day1 = Date("2021-03-01")
	day2 = Date("2021-03-02")
	day3 = Date("2021-03-03")
	day5 = Date("2021-03-05")
)

func testGoal(lastUpdated Date) Goal {
	return Goal{
		ID:          "g1",
		Title:       "Solve equations",
		Target:      50,
		Unit:        UnitProblems,
		DailyTarget: 3,
		LastUpdated: lastUpdated,
	}
}

func record(t *testing.T, g Goal, increment int, today Date) Goal {
	t.Helper()
	g, err := RecordDailyProgress(g, increment, today)
	if err != nil {
		t.Fatalf("RecordDailyProgress() failed: %v", err)
	}
	return g
}

func TestRecordDailyProgress_rejectsBadInput(t *testing.T) {
	g := testGoal(day1)
	if _, err := RecordDailyProgress(g, -1, day1); err != ErrNegativeIncrement {
		t.Errorf("negative increment: err = %v, want %v", err, ErrNegativeIncrement)
	}
	if _, err := RecordDailyProgress(g, 1, Date("monday")); err != ErrInvalidDate {
		t.Errorf("invalid date: err = %v, want %v", err, ErrInvalidDate)
	}
}

func TestRecordDailyProgress_sameDayNoTransition(t *testing.T) {
	g := testGoal(day1)

	// first write after creation must not count as a day transition
	g = record(t, g, 1, day1)
	if g.Streak != 0 || g.DailyProgress != 1 {
		t.Fatalf("got streak=%d dailyProgress=%d, want 0/1", g.Streak, g.DailyProgress)
	}

	// meeting the target today does not extend the streak today
	g = record(t, g, 1, day1)
	g = record(t, g, 1, day1)
	if g.Streak != 0 {
		t.Errorf("streak incremented within the same day: %d", g.Streak)
	}
	if g.DailyProgress != 3 {
		t.Errorf("dailyProgress = %d, want 3", g.DailyProgress)
	}
}

func TestRecordDailyProgress_streakExtendsWhenTargetMet(t *testing.T) {
	g := testGoal(day1)
	for i := 0; i < 3; i++ {
		g = record(t, g, 1, day1)
	}

	g = record(t, g, 1, day2)
	if g.Streak != 1 {
		t.Errorf("streak = %d, want 1", g.Streak)
	}
	if g.DailyProgress != 1 {
		t.Errorf("dailyProgress = %d, want 1 (reset then incremented)", g.DailyProgress)
	}
	if g.LastUpdated != day2 {
		t.Errorf("lastUpdated = %s, want %s", g.LastUpdated, day2)
	}
}

func TestRecordDailyProgress_streakBreaksWhenTargetUnmet(t *testing.T) {
	g := testGoal(day1)
	g = record(t, g, 1, day1)
	g = record(t, g, 1, day1) // only 2/3

	g = record(t, g, 1, day2)
	if g.Streak != 0 {
		t.Errorf("streak = %d, want 0", g.Streak)
	}
}

func TestRecordDailyProgress_skippedDaysResetStreak(t *testing.T) {
	g := testGoal(day1)
	for i := 0; i < 3; i++ {
		g = record(t, g, 1, day1)
	}
	g = record(t, g, 3, day2)
	if g.Streak != 1 {
		t.Fatalf("streak = %d, want 1 after day2", g.Streak)
	}

	// days 3 and 4 skipped: no partial credit even though day2 met its target
	g = record(t, g, 1, day5)
	if g.Streak != 0 {
		t.Errorf("streak = %d, want 0 after skipping days", g.Streak)
	}
}

func TestRecordDailyProgress_clampsToDailyTarget(t *testing.T) {
	g := testGoal(day1)
	g = record(t, g, 1000, day1)
	if g.DailyProgress != 3 {
		t.Errorf("dailyProgress = %d, want 3 (clamped)", g.DailyProgress)
	}
	if g.Current != 50 {
		t.Errorf("current = %d, want 50 (clamped to target)", g.Current)
	}
	if !g.Completed {
		t.Error("goal should be completed once current reaches target")
	}
}

func TestRecordDailyProgress_zeroIncrementIsIdempotent(t *testing.T) {
	g := testGoal(day1)
	g = record(t, g, 2, day1)

	once := record(t, g, 0, day1)
	twice := record(t, once, 0, day1)
	if once != g || twice != g {
		t.Errorf("zero increment changed the goal: %+v -> %+v -> %+v", g, once, twice)
	}
}

func TestRecordDailyProgress_completionIsOneWayLatch(t *testing.T) {
	g := testGoal(day1)
	g.Target = 2
	g = record(t, g, 2, day1)
	if !g.Completed || g.Current != 2 {
		t.Fatalf("got completed=%v current=%d, want true/2", g.Completed, g.Current)
	}

	g = record(t, g, 10, day2)
	if !g.Completed {
		t.Error("completed flag was un-set by a later update")
	}
	if g.Current != 2 {
		t.Errorf("current = %d, want 2 (frozen once completed)", g.Current)
	}
	if g.DailyProgress != 3 {
		t.Errorf("dailyProgress = %d, want 3 (daily tracking continues)", g.DailyProgress)
	}
}

func TestNormalized_readAcrossBoundaryOnly(t *testing.T) {
	g := testGoal(day1)
	g.DailyProgress = 3
	g.Streak = 4

	same := g.Normalized(day1)
	if same != g {
		t.Errorf("Normalized on the same day changed the goal: %+v", same)
	}

	next := g.Normalized(day2)
	if next.Streak != 5 {
		t.Errorf("streak = %d, want 5", next.Streak)
	}
	if next.DailyProgress != 0 {
		t.Errorf("dailyProgress = %d, want 0", next.DailyProgress)
	}

	skipped := g.Normalized(day3)
	if skipped.Streak != 0 {
		t.Errorf("streak = %d, want 0 after a skipped day", skipped.Streak)
	}
}

func TestDate(t *testing.T) {
	if next := day1.Next(); next != day2 {
		t.Errorf("Next() = %s, want %s", next, day2)
	}
	if !day1.Before(day2) || day2.Before(day1) {
		t.Error("Before() mis-ordered dates")
	}
	if Date("2021-13-40").Valid() {
		t.Error("Valid() accepted a nonsense date")
	}
	if !day5.Valid() {
		t.Error("Valid() rejected a good date")
	}
}
