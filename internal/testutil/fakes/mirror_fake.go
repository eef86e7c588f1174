package fakes

import (
	"context"
	"sync"

	"github.com/janghq/whereabouts-board/internal/models"
)

// FakeMirror is an in-memory stand-in for the MySQL mirror. It stores
// records and log entries, and can simulate an outage via FailError.
type FakeMirror struct {
	mu        sync.Mutex
	records   map[string]models.Record
	logs      []models.LogEntry
	FailError error
}

func NewFakeMirror() *FakeMirror {
	return &FakeMirror{records: make(map[string]models.Record)}
}

func (f *FakeMirror) SaveRecord(_ context.Context, rec models.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailError != nil {
		return f.FailError
	}
	f.records[rec.EmployeeID] = rec
	return nil
}

func (f *FakeMirror) LoadRecords(_ context.Context) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailError != nil {
		return nil, f.FailError
	}
	out := make([]models.Record, 0, len(f.records))
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, nil
}

func (f *FakeMirror) AppendLog(_ context.Context, entry models.LogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailError != nil {
		return f.FailError
	}
	f.logs = append(f.logs, entry)
	return nil
}

// SavedRecord returns the mirrored record for an employee, if present.
func (f *FakeMirror) SavedRecord(employeeID string) (models.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[employeeID]
	return rec, ok
}

// LogCount reports how many entries reached the durable log.
func (f *FakeMirror) LogCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.logs)
}
