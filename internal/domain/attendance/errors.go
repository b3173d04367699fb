package attendance

import "errors"

// Attendance domain errors
var (
	// Check-out errors
	ErrNoCheckIn = errors.New("no check-in record found for today")

	// Manual edit errors
	ErrInvalidTimeFormat = errors.New("time must use HH:mm format (e.g., 09:30 or 17:00)")
	ErrRecordIDMismatch  = errors.New("record id does not match employee_id and date")
	ErrInvalidStatus     = errors.New("status must be one of Present, Late, Absent, On Leave")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
