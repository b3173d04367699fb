package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for attendance records.
// Records are keyed by RecordID(employeeID, date).
type AttendanceRepository interface {
	// Upsert loads the record with id (nil when absent), passes it to fn and
	// stores what fn returns, as one atomic step. If fn fails nothing is written.
	Upsert(ctx context.Context, id string, fn func(existing *Attendance) (Attendance, error)) (Attendance, error)

	// CreateIfAbsent inserts record unless one already exists for its id.
	CreateIfAbsent(ctx context.Context, record Attendance) (bool, error)

	// GetByEmployeeAndDate returns nil, nil when the employee has no record that day
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*Attendance, error)

	// List returns records matching filter, newest date first, then by employee name
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	// ListByEmployee returns an employee's history, newest date first
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
}
