package progress

import (
	"context"
	"sort"
	"sync"
)

// fakeRepository is an in-package Repository + Watcher for service tests.
type fakeRepository struct {
	mu        sync.RWMutex
	records   map[string]ProgressRecord
	listeners map[string]map[int]func(ProgressRecord)
	listenSeq int
}

var (
	_ Repository = (*fakeRepository)(nil)
	_ Watcher    = (*fakeRepository)(nil)
)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		records:   make(map[string]ProgressRecord),
		listeners: make(map[string]map[int]func(ProgressRecord)),
	}
}

func (repo *fakeRepository) GetRecord(_ context.Context, userID string) (ProgressRecord, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	rec, ok := repo.records[userID]
	if !ok {
		return ProgressRecord{}, ErrNotFound
	}
	return rec, nil
}

func (repo *fakeRepository) SaveRecord(_ context.Context, rec ProgressRecord) (ProgressRecord, error) {
	repo.mu.Lock()
	repo.records[rec.UserID] = rec
	listeners := make([]func(ProgressRecord), 0, len(repo.listeners[rec.UserID]))
	for _, onChange := range repo.listeners[rec.UserID] {
		listeners = append(listeners, onChange)
	}
	repo.mu.Unlock()

	for _, onChange := range listeners {
		onChange(rec)
	}
	return rec, nil
}

func (repo *fakeRepository) TopRecordsByXP(_ context.Context, limit int) ([]ProgressRecord, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	top := make([]ProgressRecord, 0, len(repo.records))
	for _, rec := range repo.records {
		top = append(top, rec)
	}
	sort.Slice(top, func(i, j int) bool { return top[i].TotalXP > top[j].TotalXP })
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

func (repo *fakeRepository) Subscribe(userID string, onChange func(ProgressRecord)) (func(), error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.listenSeq++
	id := repo.listenSeq
	if repo.listeners[userID] == nil {
		repo.listeners[userID] = make(map[int]func(ProgressRecord))
	}
	repo.listeners[userID][id] = onChange

	// idempotent, safe after the store is gone
	unsubscribe := func() {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		delete(repo.listeners[userID], id)
	}
	return unsubscribe, nil
}
