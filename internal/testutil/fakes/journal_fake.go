package fakes

import (
	"context"
	"sync"
	"time"

	"github.com/janghq/whereabouts-board/internal/models"
	"github.com/google/uuid"
)

// FakeJournal is an in-memory board.Journal that can simulate append
// failures.
type FakeJournal struct {
	mu        sync.Mutex
	Entries   []models.LogEntry
	FailError error
}

func (f *FakeJournal) Append(_ context.Context, actor, message string) (models.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailError != nil {
		return models.LogEntry{}, f.FailError
	}
	entry := models.LogEntry{
		ID:        uuid.New().String(),
		Actor:     actor,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	f.Entries = append(f.Entries, entry)
	return entry, nil
}

func (f *FakeJournal) Recent(_ context.Context, n int) ([]models.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= 0 || n > len(f.Entries) {
		n = len(f.Entries)
	}
	out := make([]models.LogEntry, 0, n)
	for i := len(f.Entries) - 1; i >= len(f.Entries)-n; i-- {
		out = append(out, f.Entries[i])
	}
	return out, nil
}

// Count reports how many entries were appended.
func (f *FakeJournal) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Entries)
}
