package attendance

import (
	"strings"
	"time"

	"github.com/attendease/attendease-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// UpsertAttendanceRequest is an HR edit. Nil fields keep their stored value.
// For the time fields an empty string clears the value.
type UpsertAttendanceRequest struct {
	ID           *string `json:"id,omitempty"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       *Status `json:"status,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`
}

// Validate checks the request and normalizes HH:mm times to HH:mm:ss.
func (r *UpsertAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.CheckInTime != nil {
		normalized, err := NormalizeClockTime(*r.CheckInTime)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: err.Error(),
				Err:     err,
			})
		} else {
			r.CheckInTime = &normalized
		}
	}

	if r.CheckOutTime != nil {
		normalized, err := NormalizeClockTime(*r.CheckOutTime)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: err.Error(),
				Err:     err,
			})
		} else {
			r.CheckOutTime = &normalized
		}
	}

	if r.Status != nil && !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
			Err:     ErrInvalidStatus,
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizeClockTime accepts strict HH:mm and appends ":00". The empty string
// is returned unchanged and means "clear".
func NormalizeClockTime(value string) (string, error) {
	switch {
	case value == "":
		return "", nil
	case validator.IsValidClockTime(value):
		return value + ":00", nil
	}
	return "", ErrInvalidTimeFormat
}

type AttendanceFilter struct {
	// Search matches employee name or employee id, case-insensitive
	Search *string `json:"search,omitempty"`
	Date   *string `json:"date,omitempty"` // YYYY-MM-DD
	Status *Status `json:"status,omitempty"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
			Err:     ErrInvalidStatus,
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Matches reports whether a record passes the filter.
func (f AttendanceFilter) Matches(a Attendance) bool {
	if f.Search != nil && *f.Search != "" {
		term := strings.ToLower(*f.Search)
		if !strings.Contains(strings.ToLower(a.EmployeeName), term) &&
			!strings.Contains(strings.ToLower(a.EmployeeID), term) {
			return false
		}
	}
	if f.Date != nil && a.Date != *f.Date {
		return false
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	return true
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	TotalHours   *string `json:"total_hours,omitempty"`
	Status       Status  `json:"status"`
	Remarks      *string `json:"remarks,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func ToResponse(att Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		EmployeeName: att.EmployeeName,
		Date:         att.Date,
		CheckInTime:  att.CheckInTime,
		CheckOutTime: att.CheckOutTime,
		TotalHours:   att.TotalHours,
		Status:       att.Status,
		Remarks:      att.Remarks,
		CreatedAt:    att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    att.UpdatedAt.Format(time.RFC3339),
	}
}

func ToResponses(records []Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, ToResponse(att))
	}
	return responses
}
