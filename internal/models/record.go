package models

import "time"

// StatusKind represents an employee's attendance status.
type StatusKind string

const (
	// Stored statuses, written by the transition engine.
	StatusUnregistered StatusKind = "unregistered"
	StatusOffice       StatusKind = "office"
	StatusOutbound     StatusKind = "outbound"
	StatusReturned     StatusKind = "returned"
	StatusRemoved      StatusKind = "removed"

	// Derived-only statuses, produced by status derivation from the
	// work calendar. Never written to a record.
	StatusVacation StatusKind = "vacation"
	StatusAbsent   StatusKind = "absent"
)

// Record is the single authoritative attendance state for one employee.
// At most one record exists per employee id; records are reset or marked
// removed, never physically deleted.
type Record struct {
	EmployeeID       string     `json:"employee_id"`
	Department       string     `json:"department,omitempty"`
	Role             string     `json:"role,omitempty"`
	Status           StatusKind `json:"status"`
	OutAt            *time.Time `json:"out_at,omitempty"`
	ReturnAt         *time.Time `json:"return_at,omitempty"`
	ExpectedReturnAt *time.Time `json:"expected_return_at,omitempty"`
	Place            string     `json:"place,omitempty"`
	Version          uint64     `json:"version"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// LoginRequest carries an identity plus an opaque credential. Credential
// verification is delegated to the deployment; the core only requires it
// to be present.
type LoginRequest struct {
	Identity   string `json:"identity" binding:"required" example:"kim.minji"`
	Credential string `json:"credential" binding:"required"`
}

// LoginResponse returns the session token for subsequent calls.
type LoginResponse struct {
	Token     string    `json:"token"`
	Identity  string    `json:"identity" example:"kim.minji"`
	Role      string    `json:"role" example:"member"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MarkOutRequest marks the session's employee as out of office.
type MarkOutRequest struct {
	Place            string     `json:"place" binding:"required" example:"Client HQ"`
	ExpectedReturnAt *time.Time `json:"expected_return_at,omitempty" example:"2025-01-08T15:30:00Z"`
}

// ProvisionEmployeeRequest adds a new employee to the roster.
type ProvisionEmployeeRequest struct {
	Name       string `json:"name" binding:"required" example:"kim.minji"`
	Department string `json:"department,omitempty" example:"Field Sales"`
	Role       string `json:"role,omitempty" example:"member"`
}
