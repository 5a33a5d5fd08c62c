package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/elimu/core/progress"
)

func CreateRecord(
	t *testing.T,
	repo progress.Repository,
	userID, name, email string,
	totalXP int,
	goals ...progress.Goal,
) progress.ProgressRecord {
	t.Helper()

	rec := progress.ProgressRecord{
		UserID:    userID,
		Name:      name,
		Email:     email,
		TotalXP:   totalXP,
		Goals:     goals,
		UpdatedAt: time.Now().UTC(),
	}
	if len(goals) > 0 {
		rec.ActiveGoalID = goals[0].ID
		rec.StreakCount = goals[0].Streak
	}
	rec, err := repo.SaveRecord(context.Background(), rec)
	if err != nil {
		t.Fatalf("CreateRecord() failed: %v", err)
	}
	return rec
}

func CreateGoal(title string, target, dailyTarget int, unit string) progress.Goal {
	return progress.Goal{
		ID:          uuid.New().String(),
		Title:       title,
		Target:      target,
		Unit:        unit,
		DailyTarget: dailyTarget,
		LastUpdated: progress.Today(),
		CreatedAt:   time.Now().UTC(),
	}
}

// Diff returns a unified diff of two payloads for test failure output.
func Diff(want, got string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	return diff
}
