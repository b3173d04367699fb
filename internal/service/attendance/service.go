package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendease/attendease-backend-go/internal/domain/attendance"
	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	"github.com/attendease/attendease-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	location *time.Location
	clock    func() time.Time
}

// NewAttendanceService builds the attendance engine. Dates and the late
// cutoff are evaluated in location; clock defaults to time.Now.
func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, employeeRepository employee.EmployeeRepository, location *time.Location, clock func() time.Time) attendance.AttendanceService {
	if location == nil {
		location = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		location:             location,
		clock:                clock,
	}
}

// now is truncated to the second so a stored HH:mm:ss re-derives the same status
func (a *AttendanceServiceImpl) now() time.Time {
	return a.clock().In(a.location).Truncate(time.Second)
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today() string {
	return a.now().Format(attendance.DateLayout)
}

// MarkCheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkCheckIn(ctx context.Context, employeeID string, employeeName string) (attendance.AttendanceResponse, error) {
	if employeeID == "" {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}

	nowLocal := a.now()
	dateLocal := nowLocal.Format(attendance.DateLayout)
	clock := nowLocal.Format(attendance.TimeLayout)
	status := attendance.StatusAt(nowLocal)

	if employeeName == "" {
		emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		employeeName = emp.Name
	}

	record, err := a.AttendanceRepository.Upsert(ctx, attendance.RecordID(employeeID, dateLocal), func(existing *attendance.Attendance) (attendance.Attendance, error) {
		if existing == nil {
			return attendance.Attendance{
				EmployeeID:   employeeID,
				EmployeeName: employeeName,
				Date:         dateLocal,
				CheckInTime:  &clock,
				Status:       status,
			}, nil
		}

		record := *existing
		if record.CheckInTime == nil {
			record.CheckInTime = &clock
			if record.CheckOutTime != nil {
				totalHours := attendance.CalculateTotalHours(*record.CheckInTime, *record.CheckOutTime, record.Date, a.location)
				record.TotalHours = &totalHours
			}
		}
		if record.Status == attendance.StatusAbsent {
			record.Status = status
		}
		return record, nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to mark check-in: %w", err)
	}

	return attendance.ToResponse(record), nil
}

// MarkCheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkCheckOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	nowLocal := a.now()
	dateLocal := nowLocal.Format(attendance.DateLayout)
	clock := nowLocal.Format(attendance.TimeLayout)

	record, err := a.AttendanceRepository.Upsert(ctx, attendance.RecordID(employeeID, dateLocal), func(existing *attendance.Attendance) (attendance.Attendance, error) {
		if existing == nil {
			return attendance.Attendance{}, attendance.ErrNoCheckIn
		}

		record := *existing
		record.CheckOutTime = &clock
		// no duration without a check-in (Absent or On Leave records)
		record.TotalHours = nil
		if record.CheckInTime != nil {
			totalHours := attendance.CalculateTotalHours(*record.CheckInTime, clock, record.Date, a.location)
			record.TotalHours = &totalHours
		}
		return record, nil
	})
	if err != nil {
		if errors.Is(err, attendance.ErrNoCheckIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to mark check-out: %w", err)
	}

	return attendance.ToResponse(record), nil
}

// UpsertAttendanceRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpsertAttendanceRecord(ctx context.Context, req attendance.UpsertAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	id := attendance.RecordID(req.EmployeeID, req.Date)
	if req.ID != nil && *req.ID != "" && *req.ID != id {
		return attendance.AttendanceResponse{}, attendance.ErrRecordIDMismatch
	}

	// Only needed when the record turns out to be new, but the lookup must
	// happen outside the repository callback.
	var directoryName string
	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	switch {
	case err == nil:
		directoryName = emp.Name
	case errors.Is(err, employee.ErrEmployeeNotFound):
	default:
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	record, err := a.AttendanceRepository.Upsert(ctx, id, func(existing *attendance.Attendance) (attendance.Attendance, error) {
		var record attendance.Attendance
		if existing != nil {
			record = *existing
		} else {
			if directoryName == "" {
				return attendance.Attendance{}, employee.ErrEmployeeNotFound
			}
			record = attendance.Attendance{
				EmployeeID:   req.EmployeeID,
				EmployeeName: directoryName,
				Date:         req.Date,
			}
		}
		return a.mergeRecord(record, req)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(record), nil
}

// mergeRecord applies an HR edit, then recomputes the derived fields
func (a *AttendanceServiceImpl) mergeRecord(record attendance.Attendance, req attendance.UpsertAttendanceRequest) (attendance.Attendance, error) {
	if req.EmployeeName != nil && *req.EmployeeName != "" {
		record.EmployeeName = *req.EmployeeName
	}
	if req.CheckInTime != nil {
		record.CheckInTime = emptyToNil(*req.CheckInTime)
	}
	if req.CheckOutTime != nil {
		record.CheckOutTime = emptyToNil(*req.CheckOutTime)
	}
	if req.Remarks != nil {
		record.Remarks = emptyToNil(*req.Remarks)
	}
	if req.Status != nil {
		record.Status = *req.Status
		if req.Status.IsManualOverride() {
			record.CheckInTime = nil
			record.CheckOutTime = nil
		}
	}

	if record.CheckInTime != nil && record.CheckOutTime != nil {
		totalHours := attendance.CalculateTotalHours(*record.CheckInTime, *record.CheckOutTime, record.Date, a.location)
		record.TotalHours = &totalHours
	} else {
		record.TotalHours = nil
	}

	if !record.Status.IsManualOverride() && record.CheckInTime != nil {
		status, err := attendance.StatusForCheckIn(record.Date, *record.CheckInTime, a.location)
		if err != nil {
			return attendance.Attendance{}, attendance.ErrInvalidTimeFormat
		}
		record.Status = status
	}

	if !record.Status.IsValid() {
		return attendance.Attendance{}, validator.ValidationErrors{{
			Field:   "status",
			Message: "status is required when no check-in time is given",
			Err:     attendance.ErrInvalidStatus,
		}}
	}
	return record, nil
}

// GetAllAttendanceRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAllAttendanceRecords(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return attendance.ToResponses(records), nil
}

// GetAttendanceByEmployeeAndDate implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendanceByEmployeeAndDate(ctx context.Context, employeeID string, date string) (attendance.AttendanceResponse, error) {
	if err := validateDate(date); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	return attendance.ToResponse(*record), nil
}

// GetAttendanceByDate implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendanceByDate(ctx context.Context, date string) ([]attendance.AttendanceResponse, error) {
	return a.GetAllAttendanceRecords(ctx, attendance.AttendanceFilter{Date: &date})
}

// GetAttendanceHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendanceHistory(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance history: %w", err)
	}
	return attendance.ToResponses(records), nil
}

// GetTodaysAttendanceForEmployee implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodaysAttendanceForEmployee(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	return a.GetAttendanceByEmployeeAndDate(ctx, employeeID, a.Today())
}

// MarkAbsentees implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAbsentees(ctx context.Context, date string) (int, error) {
	if err := validateDate(date); err != nil {
		return 0, err
	}

	employees, err := a.EmployeeRepository.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}

	marked := 0
	for _, emp := range employees {
		created, err := a.AttendanceRepository.CreateIfAbsent(ctx, attendance.Attendance{
			ID:           attendance.RecordID(emp.ID, date),
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Date:         date,
			Status:       attendance.StatusAbsent,
		})
		if err != nil {
			slog.Error("Failed to mark employee absent", "employee_id", emp.ID, "date", date, "error", err)
			continue
		}
		if created {
			marked++
		}
	}

	slog.Info("Absence sweep finished", "date", date, "employees", len(employees), "marked_absent", marked)
	return marked, nil
}

func validateDate(date string) error {
	if _, ok := validator.IsValidDate(date); !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
