package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/elimu/core/progress"
)

type progressRepository struct {
	db *recordTable
}

var (
	_ progress.Repository = (*progressRepository)(nil)
	_ progress.Watcher    = (*progressRepository)(nil)
)

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db.progress}
}

func (repo *progressRepository) GetRecord(_ context.Context, userID string) (progress.ProgressRecord, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rec, ok := repo.db.table[userID]
	if !ok {
		return progress.ProgressRecord{}, progress.ErrNotFound
	}
	return clone(*rec), nil
}

func (repo *progressRepository) SaveRecord(_ context.Context, rec progress.ProgressRecord) (progress.ProgressRecord, error) {
	repo.db.Lock()
	saved := clone(rec)
	repo.db.table[rec.UserID] = &saved

	// snapshot listeners; notify outside the lock
	listeners := make([]func(progress.ProgressRecord), 0, len(repo.db.listeners[rec.UserID]))
	for _, onChange := range repo.db.listeners[rec.UserID] {
		listeners = append(listeners, onChange)
	}
	repo.db.Unlock()

	for _, onChange := range listeners {
		onChange(clone(saved))
	}
	return clone(saved), nil
}

func (repo *progressRepository) TopRecordsByXP(_ context.Context, limit int) ([]progress.ProgressRecord, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	top := make([]progress.ProgressRecord, 0, len(repo.db.table))
	for _, rec := range repo.db.table {
		top = append(top, clone(*rec))
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].TotalXP != top[j].TotalXP {
			return top[i].TotalXP > top[j].TotalXP
		}
		return top[i].UserID < top[j].UserID // stable order for equal XP
	})
	if limit >= 0 && len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

// Subscribe registers onChange for every save of userID's record.
// The returned unsubscribe func is idempotent and remains safe to call
// after the DB has been closed.
func (repo *progressRepository) Subscribe(userID string, onChange func(progress.ProgressRecord)) (func(), error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.listenSeq++
	id := repo.db.listenSeq
	if repo.db.listeners[userID] == nil {
		repo.db.listeners[userID] = make(map[int]func(progress.ProgressRecord))
	}
	repo.db.listeners[userID][id] = onChange

	unsubscribe := func() {
		repo.db.Lock()
		defer repo.db.Unlock()
		delete(repo.db.listeners[userID], id)
	}
	return unsubscribe, nil
}

// clone deep-copies a record so callers never share goal slices with the
// stored copy.
func clone(rec progress.ProgressRecord) progress.ProgressRecord {
	rec.Goals = append([]progress.Goal{}, rec.Goals...)
	return rec
}
