package board

import (
	"sort"
	"time"

	"github.com/janghq/whereabouts-board/internal/models"
)

// WorkCalendar configures the working-hours window used by status
// derivation. Hours are half-open: an employee is on duty from StartHour
// (inclusive) until EndHour (exclusive). Saturday and Sunday are never
// workdays.
type WorkCalendar struct {
	StartHour int
	EndHour   int
}

// DefaultCalendar is the 09:00-18:00, Monday-to-Friday office week.
func DefaultCalendar() WorkCalendar {
	return WorkCalendar{StartHour: 9, EndHour: 18}
}

// Workday reports whether t falls on a working day.
func (c WorkCalendar) Workday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// OnDuty reports whether t falls inside working hours on a workday.
func (c WorkCalendar) OnDuty(t time.Time) bool {
	if !c.Workday(t) {
		return false
	}
	h := t.Hour()
	return h >= c.StartHour && h < c.EndHour
}

// Derive computes the displayed status for a record at the given
// instant. Pure and deterministic: any client re-deriving with the same
// inputs gets the same answer. Priority order:
//
//  1. removed records stay removed
//  2. non-workdays show vacation regardless of the record
//  3. outside working hours everyone is absent (off duty)
//  4. an out-record from today with no return shows outbound
//  5. no activity today past shift start shows absent (unregistered)
//  6. otherwise office
func Derive(rec models.Record, now time.Time, cal WorkCalendar) models.StatusKind {
	if rec.Status == models.StatusRemoved {
		return models.StatusRemoved
	}
	if !cal.Workday(now) {
		return models.StatusVacation
	}
	if !cal.OnDuty(now) {
		return models.StatusAbsent
	}
	if rec.Status == models.StatusOutbound && rec.OutAt != nil && sameDay(*rec.OutAt, now) {
		return models.StatusOutbound
	}
	if !activeToday(rec, now) {
		return models.StatusAbsent
	}
	return models.StatusOffice
}

// activeToday reports whether the record shows any attendance activity
// on the same calendar day as now.
func activeToday(rec models.Record, now time.Time) bool {
	if rec.OutAt != nil && sameDay(*rec.OutAt, now) {
		return true
	}
	if rec.ReturnAt != nil && sameDay(*rec.ReturnAt, now) {
		return true
	}
	return false
}

// sameDay compares calendar days in b's location, so timestamps stored
// in other zones line up with the observer's day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// statusColors is the fixed enum-to-color table shared by every client
// surface (board badges, admin stats). Color mapping is data, not logic.
var statusColors = map[models.StatusKind]string{
	models.StatusOffice:       "#2ecc71",
	models.StatusOutbound:     "#e67e22",
	models.StatusReturned:     "#3498db",
	models.StatusUnregistered: "#95a5a6",
	models.StatusRemoved:      "#7f8c8d",
	models.StatusVacation:     "#9b59b6",
	models.StatusAbsent:       "#e74c3c",
}

// Color returns the display color for a status kind.
func Color(kind models.StatusKind) string {
	if c, ok := statusColors[kind]; ok {
		return c
	}
	return statusColors[models.StatusUnregistered]
}

// ComputeSummary derives per-status counts and per-employee detail from
// a record listing and the current time. Removed employees are excluded
// from the active roster but still counted under removed.
func ComputeSummary(records map[string]models.Record, now time.Time, cal WorkCalendar) models.Summary {
	summary := models.Summary{
		Counts:      make(map[models.StatusKind]int, len(statusColors)),
		Employees:   make([]models.EmployeeStatus, 0, len(records)),
		GeneratedAt: now,
	}

	for _, rec := range records {
		kind := Derive(rec, now, cal)
		summary.Counts[kind]++
		if kind == models.StatusRemoved {
			continue
		}
		summary.Employees = append(summary.Employees, models.EmployeeStatus{
			EmployeeID:       rec.EmployeeID,
			Department:       rec.Department,
			Status:           kind,
			Color:            Color(kind),
			Place:            rec.Place,
			OutAt:            rec.OutAt,
			ReturnAt:         rec.ReturnAt,
			ExpectedReturnAt: rec.ExpectedReturnAt,
		})
	}

	sort.Slice(summary.Employees, func(i, j int) bool {
		return summary.Employees[i].EmployeeID < summary.Employees[j].EmployeeID
	})

	return summary
}
