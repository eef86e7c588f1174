package models

import "time"

// AdminActor is the actor recorded for roster mutations performed by an
// administrator rather than the employee themselves.
const AdminActor = "admin"

// LogEntry is one immutable line in the append-only mutation journal.
type LogEntry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor" example:"kim.minji"`
	Message   string    `json:"message" example:"kim.minji marked out to Client HQ"`
	CreatedAt time.Time `json:"created_at"`
}

// ListLogsQuery bounds journal reads for display.
type ListLogsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100" example:"50"`
}

// LogListResponse is the journal tail, newest first.
type LogListResponse struct {
	Entries []LogEntry `json:"entries"`
}
