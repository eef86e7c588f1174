package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/janghq/whereabouts-board/internal/models"
	"github.com/janghq/whereabouts-board/pkg/clock"
	"github.com/janghq/whereabouts-board/platform/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine is the only component allowed to mutate attendance records.
// Every operation is a single logical transaction against one employee's
// record: serialized per employee id, committed to the mirror before
// memory, followed by exactly one journal append and one feed broadcast.
// The per-employee lock covers only the read-modify-write; side effects
// run after it is released so they never stall the next mutation.
type Engine struct {
	store     *MemoryStore
	journal   Journal
	notifier  Notifier
	publisher EventPublisher
	mirror    Mirror
	clk       clock.Clock
	cal       WorkCalendar
	logger    logging.Logger

	implicitProvision bool
	logTail           int

	keys keyedMutex
}

// EngineConfig carries the engine's collaborators. Store and Journal are
// required; Notifier, Publisher and Mirror are optional.
type EngineConfig struct {
	Store             *MemoryStore
	Journal           Journal
	Notifier          Notifier
	Publisher         EventPublisher
	Mirror            Mirror
	Clock             clock.Clock
	Calendar          WorkCalendar
	Logger            logging.Logger
	ImplicitProvision bool
	LogTail           int
}

// NewEngine wires a transition engine from its collaborators.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = clock.System{}
	}
	if cfg.Calendar == (WorkCalendar{}) {
		cfg.Calendar = DefaultCalendar()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNoOpLogger()
	}
	if cfg.LogTail <= 0 {
		cfg.LogTail = 50
	}
	return &Engine{
		store:             cfg.Store,
		journal:           cfg.Journal,
		notifier:          cfg.Notifier,
		publisher:         cfg.Publisher,
		mirror:            cfg.Mirror,
		clk:               cfg.Clock,
		cal:               cfg.Calendar,
		logger:            cfg.Logger,
		implicitProvision: cfg.ImplicitProvision,
		logTail:           cfg.LogTail,
		keys:              keyedMutex{locks: make(map[string]*sync.Mutex)},
	}
}

// Calendar returns the work calendar the engine derives against.
func (e *Engine) Calendar() WorkCalendar { return e.cal }

// MarkOut records the employee as out of office at the given place.
// Unknown employees are rejected unless implicit provisioning is on. A
// prior ReturnAt is preserved so the day's history survives repeat trips.
func (e *Engine) MarkOut(ctx context.Context, employeeID, place string, expectedReturn *time.Time, now time.Time) (models.Record, error) {
	if employeeID == "" {
		return models.Record{}, NewValidationError("employee id is required")
	}
	if place == "" {
		return models.Record{}, NewValidationError("place is required")
	}

	rec, err := e.mutate(ctx, employeeID, func(rec models.Record, exists bool) (models.Record, error) {
		if !exists {
			if !e.implicitProvision {
				return models.Record{}, NewValidationError("unknown employee: %s", employeeID)
			}
			rec = models.Record{EmployeeID: employeeID}
		}
		if rec.Status == models.StatusRemoved {
			return models.Record{}, NewValidationError("employee is retired: %s", employeeID)
		}

		out := now
		rec.Status = models.StatusOutbound
		rec.OutAt = &out
		rec.Place = place
		rec.ExpectedReturnAt = expectedReturn
		rec.UpdatedAt = now
		return rec, nil
	})
	if err != nil {
		return models.Record{}, err
	}

	e.finish(ctx, employeeID, fmt.Sprintf("%s marked out to %s", employeeID, place), events.BoardEvent{
		EventID:    uuid.New().String(),
		EmployeeID: employeeID,
		Operation:  events.OpMarkOut,
		Status:     string(models.StatusOutbound),
		Place:      place,
		At:         now,
	})
	return rec, nil
}

// MarkReturn records the employee as back. When no record exists one is
// created directly in the returned state with no out time; otherwise
// OutAt and Place are preserved.
func (e *Engine) MarkReturn(ctx context.Context, employeeID string, now time.Time) (models.Record, error) {
	if employeeID == "" {
		return models.Record{}, NewValidationError("employee id is required")
	}

	rec, err := e.mutate(ctx, employeeID, func(rec models.Record, exists bool) (models.Record, error) {
		if !exists {
			rec = models.Record{EmployeeID: employeeID}
		}
		if rec.Status == models.StatusRemoved {
			return models.Record{}, NewValidationError("employee is retired: %s", employeeID)
		}
		if rec.OutAt != nil && now.Before(*rec.OutAt) {
			return models.Record{}, NewValidationError("return time precedes out time")
		}

		ret := now
		rec.Status = models.StatusReturned
		rec.ReturnAt = &ret
		rec.UpdatedAt = now
		return rec, nil
	})
	if err != nil {
		return models.Record{}, err
	}

	e.finish(ctx, employeeID, fmt.Sprintf("%s returned", employeeID), events.BoardEvent{
		EventID:    uuid.New().String(),
		EmployeeID: employeeID,
		Operation:  events.OpMarkReturn,
		Status:     string(models.StatusReturned),
		At:         now,
	})
	return rec, nil
}

// Clear resets the employee's attendance fields to unregistered, keeping
// department and role. Idempotent: clearing twice is the same as once.
func (e *Engine) Clear(ctx context.Context, employeeID string) (models.Record, error) {
	now := e.clk.Now()
	rec, err := e.mutate(ctx, employeeID, func(rec models.Record, exists bool) (models.Record, error) {
		if !exists {
			return models.Record{}, ErrNotFound
		}

		rec.Status = models.StatusUnregistered
		rec.OutAt = nil
		rec.ReturnAt = nil
		rec.ExpectedReturnAt = nil
		rec.Place = ""
		rec.UpdatedAt = now
		return rec, nil
	})
	if err != nil {
		return models.Record{}, err
	}

	e.finish(ctx, models.AdminActor, fmt.Sprintf("record for %s cleared", employeeID), events.BoardEvent{
		EventID:    uuid.New().String(),
		EmployeeID: employeeID,
		Operation:  events.OpClear,
		Status:     string(models.StatusUnregistered),
		At:         now,
	})
	return rec, nil
}

// Provision adds an employee in the unregistered state. Provisioning an
// active employee again is a validation error; a retired employee is
// reactivated with a fresh attendance state.
func (e *Engine) Provision(ctx context.Context, name, department, role string) (models.Record, error) {
	if name == "" {
		return models.Record{}, NewValidationError("employee name is required")
	}

	now := e.clk.Now()
	rec, err := e.mutate(ctx, name, func(rec models.Record, exists bool) (models.Record, error) {
		if exists && rec.Status != models.StatusRemoved {
			return models.Record{}, NewValidationError("employee already provisioned: %s", name)
		}
		if !exists {
			rec = models.Record{EmployeeID: name}
		}

		rec.Department = department
		rec.Role = role
		rec.Status = models.StatusUnregistered
		rec.OutAt = nil
		rec.ReturnAt = nil
		rec.ExpectedReturnAt = nil
		rec.Place = ""
		rec.UpdatedAt = now
		return rec, nil
	})
	if err != nil {
		return models.Record{}, err
	}

	e.finish(ctx, models.AdminActor, fmt.Sprintf("%s provisioned", name), events.BoardEvent{
		EventID:    uuid.New().String(),
		EmployeeID: name,
		Operation:  events.OpProvision,
		Status:     string(models.StatusUnregistered),
		At:         now,
	})
	return rec, nil
}

// Retire soft-deletes the employee: the record stays queryable but is
// excluded from the active roster. Logs referencing the employee are
// untouched.
func (e *Engine) Retire(ctx context.Context, employeeID string) (models.Record, error) {
	now := e.clk.Now()
	rec, err := e.mutate(ctx, employeeID, func(rec models.Record, exists bool) (models.Record, error) {
		if !exists {
			return models.Record{}, ErrNotFound
		}

		rec.Status = models.StatusRemoved
		rec.UpdatedAt = now
		return rec, nil
	})
	if err != nil {
		return models.Record{}, err
	}

	e.finish(ctx, models.AdminActor, fmt.Sprintf("%s retired", employeeID), events.BoardEvent{
		EventID:    uuid.New().String(),
		EmployeeID: employeeID,
		Operation:  events.OpRetire,
		Status:     string(models.StatusRemoved),
		At:         now,
	})
	return rec, nil
}

// Snapshot captures the full board state plus the derived summary at the
// current instant.
func (e *Engine) Snapshot() models.Snapshot {
	now := e.clk.Now()
	records := e.store.List()
	return models.Snapshot{
		Records: records,
		Summary: ComputeSummary(records, now, e.cal),
		TakenAt: now,
	}
}

// RecentLogs reads the journal tail, newest first.
func (e *Engine) RecentLogs(ctx context.Context, n int) ([]models.LogEntry, error) {
	return e.journal.Recent(ctx, n)
}

// mutate is the read-modify-write transaction for one employee: the
// keyed lock covers only the store read, fn, and the commit. Post-commit
// side effects (journal, publisher, feed) happen outside the critical
// section so a slow broker or sink never stalls the next mutation on the
// same employee.
func (e *Engine) mutate(ctx context.Context, employeeID string, fn func(rec models.Record, exists bool) (models.Record, error)) (models.Record, error) {
	unlock := e.keys.lock(employeeID)
	defer unlock()

	rec, exists := e.store.Get(employeeID)
	next, err := fn(rec, exists)
	if err != nil {
		return models.Record{}, err
	}
	return e.commit(ctx, next)
}

// commit writes the record durably first, then to memory, and returns
// the record at its stored version so memory and mirror agree. Mirror
// failures surface as ErrStoreUnavailable and leave memory untouched;
// the feed keeps serving its last snapshot marked stale.
func (e *Engine) commit(ctx context.Context, rec models.Record) (models.Record, error) {
	stored := rec
	stored.Version++
	if e.mirror != nil {
		if err := e.mirror.SaveRecord(ctx, stored); err != nil {
			if e.notifier != nil {
				e.notifier.MarkStale()
			}
			return models.Record{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	if err := e.store.Put(rec); err != nil {
		return models.Record{}, err
	}
	return stored, nil
}

// finish performs the post-commit side effects of a mutation: one
// journal append, one external event, one feed broadcast. All are
// best-effort beyond the already committed record.
func (e *Engine) finish(ctx context.Context, actor, message string, event events.BoardEvent) {
	if _, err := e.journal.Append(ctx, actor, message); err != nil {
		e.logger.Warn("journal append dropped",
			zap.String("actor", actor),
			zap.String("message", message),
			zap.Error(err),
		)
	}

	if e.publisher != nil {
		if err := e.publisher.Publish(ctx, event); err != nil {
			e.logger.Warn("event publish dropped",
				zap.String("employee_id", event.EmployeeID),
				zap.String("operation", event.Operation),
				zap.Error(err),
			)
		}
	}

	if e.notifier != nil {
		e.notifier.PublishSnapshot(e.Snapshot())
		if tail, err := e.journal.Recent(ctx, e.logTail); err == nil {
			e.notifier.PublishLogs(tail)
		}
	}
}

// keyedMutex serializes mutations per employee id. Operations on
// different employees proceed concurrently.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
