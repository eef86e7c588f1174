package storage

import (
	"context"
	"fmt"

	"github.com/janghq/whereabouts-board/internal/models"
)

// SaveRecord upserts the employee's attendance record. The mirror
// stores whole record values; partial updates never reach this layer.
func (c *MySQLClient) SaveRecord(ctx context.Context, rec models.Record) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO attendance_records
		   (employee_id, department, role, status, out_at, return_at, expected_return_at, place, version, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   department = VALUES(department),
		   role = VALUES(role),
		   status = VALUES(status),
		   out_at = VALUES(out_at),
		   return_at = VALUES(return_at),
		   expected_return_at = VALUES(expected_return_at),
		   place = VALUES(place),
		   version = VALUES(version),
		   updated_at = VALUES(updated_at)`,
		rec.EmployeeID,
		rec.Department,
		rec.Role,
		rec.Status,
		rec.OutAt,
		rec.ReturnAt,
		rec.ExpectedReturnAt,
		rec.Place,
		rec.Version,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// LoadRecords reads every record for warm start of the memory store.
func (c *MySQLClient) LoadRecords(ctx context.Context) ([]models.Record, error) {
	rows, err := c.db.QueryContext(
		ctx,
		`SELECT employee_id, department, role, status, out_at, return_at, expected_return_at, place, version, updated_at
		 FROM attendance_records`,
	)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(
			&rec.EmployeeID,
			&rec.Department,
			&rec.Role,
			&rec.Status,
			&rec.OutAt,
			&rec.ReturnAt,
			&rec.ExpectedReturnAt,
			&rec.Place,
			&rec.Version,
			&rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
