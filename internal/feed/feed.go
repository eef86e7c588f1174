// Package feed delivers live board updates to subscribers: one hub for
// status snapshots, one for journal tails. It implements the engine's
// Notifier so every committed mutation reaches every viewer, and a cron
// ticker rebroadcasts the summary on wall-clock boundaries since status
// derivation depends on the time of day, not only on record changes.
package feed

import (
	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/janghq/whereabouts-board/internal/models"
)

// Feed is the live-update fan-out for the board.
type Feed struct {
	status *Hub[models.Snapshot]
	logs   *Hub[[]models.LogEntry]
	logger logging.Logger
}

// New creates a feed with empty subscriber sets.
func New(logger logging.Logger) *Feed {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Feed{
		status: NewHub[models.Snapshot](),
		logs:   NewHub[[]models.LogEntry](),
		logger: logger,
	}
}

// PublishSnapshot broadcasts a fresh board snapshot.
func (f *Feed) PublishSnapshot(snap models.Snapshot) {
	f.status.Publish(snap)
}

// PublishLogs broadcasts the journal tail, newest first.
func (f *Feed) PublishLogs(entries []models.LogEntry) {
	f.logs.Publish(entries)
}

// MarkStale rebroadcasts the last known snapshot flagged stale. Used
// when the backing store is unreachable: viewers keep the board but see
// that it may be out of date.
func (f *Feed) MarkStale() {
	last, ok := f.status.Last()
	if !ok {
		return
	}
	if last.Stale {
		return
	}
	last.Stale = true
	f.status.Publish(last)
	f.logger.Warn("board snapshot marked stale")
}

// SubscribeStatus registers a snapshot consumer. The current snapshot is
// delivered before any incremental update; cancel is idempotent and
// stops delivery before it returns.
func (f *Feed) SubscribeStatus() (<-chan models.Snapshot, func()) {
	return f.status.Subscribe()
}

// SubscribeLogs registers a journal-tail consumer.
func (f *Feed) SubscribeLogs() (<-chan []models.LogEntry, func()) {
	return f.logs.Subscribe()
}
