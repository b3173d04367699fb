package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
	StatusOnLeave Status = "On Leave"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusOnLeave:
		return true
	}
	return false
}

// IsManualOverride reports whether s is an administrative status that is never
// re-derived from the check-in time.
func (s Status) IsManualOverride() bool {
	return s == StatusAbsent || s == StatusOnLeave
}

// Attendance is one employee's record for one calendar day. Date is
// YYYY-MM-DD and the check times are HH:mm:ss wall-clock values in the
// configured timezone.
type Attendance struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Date         string
	CheckInTime  *string
	CheckOutTime *string
	TotalHours   *string
	Status       Status
	Remarks      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
