package board

import (
	"context"

	"github.com/janghq/whereabouts-board/internal/models"
	"github.com/janghq/whereabouts-board/platform/events"
)

// Journal is the append-only mutation log the engine writes to. Appends
// are best-effort: a journal failure never rolls back a committed status
// mutation.
type Journal interface {
	Append(ctx context.Context, actor, message string) (models.LogEntry, error)
	Recent(ctx context.Context, n int) ([]models.LogEntry, error)
}

// Mirror is the optional durable backing store for records. When
// configured, a mirror write precedes the in-memory commit so memory
// never runs ahead of the durable copy.
type Mirror interface {
	SaveRecord(ctx context.Context, rec models.Record) error
	LoadRecords(ctx context.Context) ([]models.Record, error)
}

// Notifier receives exactly one broadcast per successful mutation, plus
// stale marks when the mirror is unreachable. Implemented by the live
// feed; delivery must never block the engine.
type Notifier interface {
	PublishSnapshot(snap models.Snapshot)
	PublishLogs(entries []models.LogEntry)
	MarkStale()
}

// EventPublisher mirrors committed mutations to an external broker.
// Best-effort, for consumers outside the process.
type EventPublisher interface {
	Publish(ctx context.Context, event events.BoardEvent) error
}
