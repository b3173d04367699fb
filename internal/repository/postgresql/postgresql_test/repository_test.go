package postgresql_test

import (
	"context"
	"testing"

	"github.com/attendease/attendease-backend-go/internal/domain/attendance"
	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	"github.com/attendease/attendease-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEmployeeRepository_Postgres(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	created, err := repo.CreateIfEmpty(ctx, employee.Employee{ID: "HR001", Name: "Admin HR", Role: employee.RoleHR, PasswordHash: strPtr("hash")})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfEmpty(ctx, employee.Employee{ID: "HR002", Name: "Other", Role: employee.RoleHR})
	require.NoError(t, err)
	assert.False(t, created)

	_, err = repo.Create(ctx, employee.Employee{ID: "HR001", Name: "Dup", Role: employee.RoleEmployee})
	assert.ErrorIs(t, err, employee.ErrDuplicateIdentifier)

	_, err = repo.Create(ctx, employee.Employee{ID: "EMP001", Name: "Jane", Role: employee.RoleEmployee, PasswordHash: strPtr("hash")})
	require.NoError(t, err)

	exists, err := repo.ExistsByIDAndRole(ctx, "EMP001", employee.RoleHR)
	require.NoError(t, err)
	assert.False(t, exists)

	updated, err := repo.Update(ctx, "EMP001", func(e *employee.Employee) error {
		e.Email = strPtr("jane@example.com")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", *updated.Email)
	assert.Equal(t, "hash", *updated.PasswordHash)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "EMP001", all[0].ID)

	assert.ErrorIs(t, repo.Delete(ctx, "HR001"), employee.ErrLastAdminViolation)
	require.NoError(t, repo.Delete(ctx, "EMP001"))
	assert.ErrorIs(t, repo.Delete(ctx, "EMP001"), employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository_Postgres(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	id := attendance.RecordID("EMP001", "2024-05-01")

	_, err := repo.Upsert(ctx, id, func(existing *attendance.Attendance) (attendance.Attendance, error) {
		return attendance.Attendance{}, attendance.ErrNoCheckIn
	})
	assert.ErrorIs(t, err, attendance.ErrNoCheckIn)

	got, err := repo.GetByEmployeeAndDate(ctx, "EMP001", "2024-05-01")
	require.NoError(t, err)
	assert.Nil(t, got)

	saved, err := repo.Upsert(ctx, id, func(existing *attendance.Attendance) (attendance.Attendance, error) {
		assert.Nil(t, existing)
		return attendance.Attendance{
			EmployeeID:   "EMP001",
			EmployeeName: "Jane",
			Date:         "2024-05-01",
			CheckInTime:  strPtr("09:00:00"),
			Status:       attendance.StatusPresent,
		}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, id, saved.ID)

	created, err := repo.CreateIfAbsent(ctx, attendance.Attendance{
		ID: id, EmployeeID: "EMP001", EmployeeName: "Jane", Date: "2024-05-01", Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)
	assert.False(t, created)

	search := "JAN"
	records, err := repo.List(ctx, attendance.AttendanceFilter{Search: &search})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusPresent, records[0].Status)
	assert.Equal(t, "09:00:00", *records[0].CheckInTime)
}
