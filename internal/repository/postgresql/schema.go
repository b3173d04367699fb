package postgresql

import (
	"context"
	"fmt"

	"github.com/attendease/attendease-backend-go/internal/pkg/database"
)

// Dates and clock times are stored as the same text the API exchanges
// (YYYY-MM-DD and HH:mm:ss) so they are never shifted by a session timezone.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('HR', 'Employee')),
		password_hash TEXT,
		email TEXT,
		phone TEXT,
		is_phone_verified BOOLEAN,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS attendances (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		date TEXT NOT NULL CHECK (date ~ '^\d{4}-\d{2}-\d{2}$'),
		check_in_time TEXT CHECK (check_in_time ~ '^\d{2}:\d{2}:\d{2}$'),
		check_out_time TEXT CHECK (check_out_time ~ '^\d{2}:\d{2}:\d{2}$'),
		total_hours TEXT,
		status TEXT NOT NULL CHECK (status IN ('Present', 'Late', 'Absent', 'On Leave')),
		remarks TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (employee_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendances_date ON attendances (date)`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
