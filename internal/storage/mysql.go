package storage

import "database/sql"

// MySQLClient wraps direct SQL access for the durable board mirror:
// one record row per employee id, one append-only log table.
type MySQLClient struct {
	db *sql.DB
}

// NewMySQLClient wires a sql.DB; pass a configured instance from main.
func NewMySQLClient(db *sql.DB) *MySQLClient {
	return &MySQLClient{db: db}
}
