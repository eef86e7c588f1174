package models

import "time"

// EmployeeStatus is one employee's derived state for board display.
type EmployeeStatus struct {
	EmployeeID       string     `json:"employee_id"`
	Department       string     `json:"department,omitempty"`
	Status           StatusKind `json:"status"`
	Color            string     `json:"color" example:"#e67e22"`
	Place            string     `json:"place,omitempty"`
	OutAt            *time.Time `json:"out_at,omitempty"`
	ReturnAt         *time.Time `json:"return_at,omitempty"`
	ExpectedReturnAt *time.Time `json:"expected_return_at,omitempty"`
}

// Summary is derived from the record store plus the wall clock on every
// snapshot. It is never stored.
type Summary struct {
	Counts      map[StatusKind]int `json:"counts"`
	Employees   []EmployeeStatus   `json:"employees"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Snapshot is the full board state at one instant: every record plus the
// derived summary. Stale is set when the backing store is unreachable and
// the snapshot could not be refreshed.
type Snapshot struct {
	Records map[string]Record `json:"records"`
	Summary Summary           `json:"summary"`
	TakenAt time.Time         `json:"taken_at"`
	Stale   bool              `json:"stale,omitempty"`
}
