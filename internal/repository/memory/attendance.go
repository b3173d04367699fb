package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/attendease/attendease-backend-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	mu      sync.RWMutex
	records map[string]attendance.Attendance
	now     func() time.Time
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{
		records: make(map[string]attendance.Attendance),
		now:     time.Now,
	}
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, id string, fn func(existing *attendance.Attendance) (attendance.Attendance, error)) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var existing *attendance.Attendance
	if stored, ok := r.records[id]; ok {
		c := cloneAttendance(stored)
		existing = &c
	}

	updated, err := fn(existing)
	if err != nil {
		return attendance.Attendance{}, err
	}

	now := r.now()
	updated.ID = id
	if existing != nil {
		updated.CreatedAt = existing.CreatedAt
	} else {
		updated.CreatedAt = now
	}
	updated.UpdatedAt = now
	r.records[id] = cloneAttendance(updated)
	return updated, nil
}

// CreateIfAbsent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CreateIfAbsent(ctx context.Context, record attendance.Attendance) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; ok {
		return false, nil
	}

	now := r.now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.records[record.ID] = cloneAttendance(record)
	return true, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[attendance.RecordID(employeeID, date)]
	if !ok {
		return nil, nil
	}
	c := cloneAttendance(record)
	return &c, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]attendance.Attendance, 0)
	for _, record := range r.records {
		if filter.Matches(record) {
			result = append(result, cloneAttendance(record))
		}
	}
	sortRecords(result)
	return result, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]attendance.Attendance, 0)
	for _, record := range r.records {
		if record.EmployeeID == employeeID {
			result = append(result, cloneAttendance(record))
		}
	}
	sortRecords(result)
	return result, nil
}

// sortRecords orders by date descending, then employee name and id
func sortRecords(records []attendance.Attendance) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		return a.EmployeeID < b.EmployeeID
	})
}

func cloneAttendance(a attendance.Attendance) attendance.Attendance {
	a.CheckInTime = cloneString(a.CheckInTime)
	a.CheckOutTime = cloneString(a.CheckOutTime)
	a.TotalHours = cloneString(a.TotalHours)
	a.Remarks = cloneString(a.Remarks)
	return a
}
