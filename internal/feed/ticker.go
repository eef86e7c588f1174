package feed

import (
	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/janghq/whereabouts-board/internal/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SnapshotSource produces the current board snapshot on demand.
type SnapshotSource interface {
	Snapshot() models.Snapshot
}

// Ticker rebroadcasts the derived summary on a fixed cron cadence even
// when no mutation happened, because derivation depends on the wall
// clock (working hours, weekends).
type Ticker struct {
	cron   *cron.Cron
	logger logging.Logger
}

// NewTicker schedules a summary rebroadcast per the cron spec (e.g.
// "@every 1m").
func NewTicker(spec string, src SnapshotSource, feed *Feed, logger logging.Logger) (*Ticker, error) {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		feed.PublishSnapshot(src.Snapshot())
	}); err != nil {
		return nil, err
	}

	logger.Info("summary ticker scheduled", zap.String("spec", spec))
	return &Ticker{cron: c, logger: logger}, nil
}

// Start begins ticking in its own goroutine.
func (t *Ticker) Start() {
	t.cron.Start()
}

// Stop halts the schedule and waits for a running tick to finish.
func (t *Ticker) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.logger.Info("summary ticker stopped")
}
