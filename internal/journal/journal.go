// Package journal implements the append-only mutation log: a bounded
// in-memory ring for the live tail, with best-effort durable appends to
// an optional sink for full history.
package journal

import (
	"context"
	"sync"

	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/janghq/whereabouts-board/internal/models"
	"github.com/janghq/whereabouts-board/pkg/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sink receives every appended entry for durable retention. A failing
// sink never fails the in-memory append.
type Sink interface {
	AppendLog(ctx context.Context, entry models.LogEntry) error
}

// Ring is a bounded, append-only journal. Entries are immutable once
// appended; reads are newest first and never mutate state.
type Ring struct {
	mu      sync.RWMutex
	entries []models.LogEntry
	cap     int
	dropped int

	sink   Sink
	clk    clock.Clock
	logger logging.Logger
}

// Option tweaks ring construction.
type Option func(*Ring)

// WithSink attaches a durable sink (e.g. the MySQL mirror).
func WithSink(s Sink) Option { return func(r *Ring) { r.sink = s } }

// WithClock overrides the timestamp source.
func WithClock(c clock.Clock) Option { return func(r *Ring) { r.clk = c } }

// WithLogger attaches a logger for sink failures.
func WithLogger(l logging.Logger) Option { return func(r *Ring) { r.logger = l } }

// NewRing creates a journal retaining at most capacity entries in
// memory.
func NewRing(capacity int, opts ...Option) *Ring {
	if capacity <= 0 {
		capacity = 100
	}
	r := &Ring{
		entries: make([]models.LogEntry, 0, capacity),
		cap:     capacity,
		clk:     clock.System{},
		logger:  logging.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Append assigns a server-side id and timestamp, retains the entry in
// the ring, and forwards it to the sink. Sink failures are counted and
// logged but do not fail the append.
func (r *Ring) Append(ctx context.Context, actor, message string) (models.LogEntry, error) {
	entry := models.LogEntry{
		ID:        uuid.New().String(),
		Actor:     actor,
		Message:   message,
		CreatedAt: r.clk.Now().UTC(),
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	if len(r.entries) > r.cap {
		r.entries = r.entries[len(r.entries)-r.cap:]
	}
	r.mu.Unlock()

	if r.sink != nil {
		if err := r.sink.AppendLog(ctx, entry); err != nil {
			r.mu.Lock()
			r.dropped++
			r.mu.Unlock()
			r.logger.Warn("durable journal append lost",
				zap.String("entry_id", entry.ID),
				zap.String("actor", actor),
				zap.Error(err),
			)
		}
	}

	return entry, nil
}

// Recent returns up to n entries, newest first.
func (r *Ring) Recent(_ context.Context, n int) ([]models.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || n > len(r.entries) {
		n = len(r.entries)
	}
	out := make([]models.LogEntry, 0, n)
	for i := len(r.entries) - 1; i >= len(r.entries)-n; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

// Dropped reports how many entries failed the durable append.
func (r *Ring) Dropped() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dropped
}
