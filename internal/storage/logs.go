package storage

import (
	"context"
	"fmt"

	"github.com/janghq/whereabouts-board/internal/models"
)

// AppendLog inserts one immutable journal entry. Full history is
// retained here; the in-memory ring only keeps the live tail.
func (c *MySQLClient) AppendLog(ctx context.Context, entry models.LogEntry) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO attendance_log (id, actor, message, created_at) VALUES (?, ?, ?, ?)`,
		entry.ID,
		entry.Actor,
		entry.Message,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	return nil
}

// RecentLogs reads up to limit entries, newest first.
func (c *MySQLClient) RecentLogs(ctx context.Context, limit int) ([]models.LogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := c.db.QueryContext(
		ctx,
		`SELECT id, actor, message, created_at
		 FROM attendance_log
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent logs: %w", err)
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var entry models.LogEntry
		if err := rows.Scan(&entry.ID, &entry.Actor, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log entries: %w", err)
	}
	return entries, nil
}
