package cron

import (
	"context"
	"fmt"

	"github.com/attendease/attendease-backend-go/internal/domain/attendance"
)

const JobMarkAbsentEmployees = "mark_absent_employees"

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
	}
}

// RegisterJobs schedules the absence sweep; an empty spec disables it.
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, absenceSweepSpec string) error {
	return scheduler.AddJob(JobMarkAbsentEmployees, absenceSweepSpec, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees writes an Absent record for everyone who has no
// attendance record today. Existing records are left alone.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	if _, err := j.attendanceService.MarkAbsentees(ctx, j.attendanceService.Today()); err != nil {
		return fmt.Errorf("failed to mark absent employees: %w", err)
	}
	return nil
}
