package inmemdb

import (
	"context"
	"testing"

	"github.com/trezcool/elimu/core/progress"
)

func TestProgressRepository(t *testing.T) {
	db, _ := Open()
	repo := NewProgressRepository(db)
	ctx := context.Background()

	if _, err := repo.GetRecord(ctx, "u1"); err != progress.ErrNotFound {
		t.Fatalf("GetRecord(missing): err = %v, want %v", err, progress.ErrNotFound)
	}

	rec := progress.ProgressRecord{
		UserID:  "u1",
		TotalXP: 120,
		Goals:   []progress.Goal{{ID: "g1", Title: "A", Target: 5, DailyTarget: 1, Unit: progress.UnitDays}},
	}
	if _, err := repo.SaveRecord(ctx, rec); err != nil {
		t.Fatalf("SaveRecord() failed: %v", err)
	}

	got, err := repo.GetRecord(ctx, "u1")
	if err != nil {
		t.Fatalf("GetRecord() failed: %v", err)
	}
	if got.TotalXP != 120 || len(got.Goals) != 1 {
		t.Errorf("unexpected record: %+v", got)
	}

	// returned record must not alias the stored goals
	got.Goals[0].Current = 999
	again, _ := repo.GetRecord(ctx, "u1")
	if again.Goals[0].Current == 999 {
		t.Error("GetRecord() returned an aliased goal slice")
	}
}

func TestProgressRepository_TopRecordsByXP(t *testing.T) {
	db, _ := Open()
	repo := NewProgressRepository(db)
	ctx := context.Background()

	for _, rec := range []progress.ProgressRecord{
		{UserID: "u1", TotalXP: 10},
		{UserID: "u2", TotalXP: 30},
		{UserID: "u3", TotalXP: 20},
		{UserID: "u4", TotalXP: 30},
	} {
		if _, err := repo.SaveRecord(ctx, rec); err != nil {
			t.Fatalf("SaveRecord() failed: %v", err)
		}
	}

	top, err := repo.TopRecordsByXP(ctx, 3)
	if err != nil {
		t.Fatalf("TopRecordsByXP() failed: %v", err)
	}
	want := []string{"u2", "u4", "u3"}
	if len(top) != len(want) {
		t.Fatalf("len(top) = %d, want %d", len(top), len(want))
	}
	for i, id := range want {
		if top[i].UserID != id {
			t.Errorf("top[%d] = %s, want %s", i, top[i].UserID, id)
		}
	}
}

func TestProgressRepository_Subscribe(t *testing.T) {
	db, _ := Open()
	repo := NewProgressRepository(db)
	ctx := context.Background()

	var notified int
	unsubscribe, err := repo.Subscribe("u1", func(progress.ProgressRecord) { notified++ })
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}

	_, _ = repo.SaveRecord(ctx, progress.ProgressRecord{UserID: "u1"})
	_, _ = repo.SaveRecord(ctx, progress.ProgressRecord{UserID: "u2"}) // other user: no notification
	if notified != 1 {
		t.Fatalf("notified = %d, want 1", notified)
	}

	_ = db.Close()
	unsubscribe() // safe after close
	unsubscribe() // idempotent

	_, _ = repo.SaveRecord(ctx, progress.ProgressRecord{UserID: "u1"})
	if notified != 1 {
		t.Errorf("notified = %d after close, want 1", notified)
	}
}
