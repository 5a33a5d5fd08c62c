package inmemdb

import (
	"sync"

	"github.com/trezcool/elimu/core/progress"
)

type (
	DB struct {
		progress *recordTable
	}

	recordTable struct {
		sync.RWMutex
		table     map[string]*progress.ProgressRecord
		listeners map[string]map[int]func(progress.ProgressRecord)
		listenSeq int
		closed    bool
	}
)

func Open() (*DB, error) {
	db := &DB{
		progress: &recordTable{
			table:     make(map[string]*progress.ProgressRecord),
			listeners: make(map[string]map[int]func(progress.ProgressRecord)),
		},
	}
	return db, nil
}

// Close drops all subscriptions. Outstanding unsubscribe funcs stay safe
// to call.
func (db *DB) Close() error {
	db.progress.Lock()
	defer db.progress.Unlock()
	db.progress.closed = true
	db.progress.listeners = make(map[string]map[int]func(progress.ProgressRecord))
	return nil
}
