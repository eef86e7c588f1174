package fakes

import (
	"sync"

	"github.com/janghq/whereabouts-board/internal/models"
)

// FakeNotifier records every feed broadcast for assertion.
type FakeNotifier struct {
	mu         sync.Mutex
	Snapshots  []models.Snapshot
	LogBatches [][]models.LogEntry
	StaleMarks int
}

func (f *FakeNotifier) PublishSnapshot(snap models.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Snapshots = append(f.Snapshots, snap)
}

func (f *FakeNotifier) PublishLogs(entries []models.LogEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogBatches = append(f.LogBatches, entries)
}

func (f *FakeNotifier) MarkStale() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StaleMarks++
}

// SnapshotCount reports how many snapshots were broadcast.
func (f *FakeNotifier) SnapshotCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Snapshots)
}

// LastSnapshot returns the most recent broadcast snapshot, if any.
func (f *FakeNotifier) LastSnapshot() (models.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Snapshots) == 0 {
		return models.Snapshot{}, false
	}
	return f.Snapshots[len(f.Snapshots)-1], true
}
