package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkCheckIn records today's arrival for an employee. Repeated calls keep the first check-in time.
	MarkCheckIn(ctx context.Context, employeeID string, employeeName string) (AttendanceResponse, error)

	// MarkCheckOut records today's departure. Returns ErrNoCheckIn when there is no record for today.
	MarkCheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// UpsertAttendanceRecord inserts or merges an HR-edited record (HR only)
	UpsertAttendanceRecord(ctx context.Context, req UpsertAttendanceRequest) (AttendanceResponse, error)

	GetAllAttendanceRecords(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)
	GetAttendanceByEmployeeAndDate(ctx context.Context, employeeID string, date string) (AttendanceResponse, error)
	GetAttendanceByDate(ctx context.Context, date string) ([]AttendanceResponse, error)
	GetAttendanceHistory(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	GetTodaysAttendanceForEmployee(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// MarkAbsentees writes an Absent record for every employee without a record on date
	MarkAbsentees(ctx context.Context, date string) (int, error)

	// Today returns the current calendar date (YYYY-MM-DD) in the service timezone
	Today() string
}
