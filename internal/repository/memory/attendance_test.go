package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/attendease/attendease-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(employeeID, name, date string, status attendance.Status) attendance.Attendance {
	return attendance.Attendance{
		ID:           attendance.RecordID(employeeID, date),
		EmployeeID:   employeeID,
		EmployeeName: name,
		Date:         date,
		Status:       status,
	}
}

func TestAttendanceRepository_UpsertInsertAndMerge(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	id := attendance.RecordID("EMP001", "2024-05-01")

	created, err := repo.Upsert(ctx, id, func(existing *attendance.Attendance) (attendance.Attendance, error) {
		assert.Nil(t, existing)
		r := newRecord("EMP001", "Jane", "2024-05-01", attendance.StatusPresent)
		r.CheckInTime = strPtr("09:00:00")
		return r, nil
	})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)

	merged, err := repo.Upsert(ctx, id, func(existing *attendance.Attendance) (attendance.Attendance, error) {
		require.NotNil(t, existing)
		r := *existing
		r.CheckOutTime = strPtr("17:30:00")
		return r, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", *merged.CheckInTime)
	assert.Equal(t, "17:30:00", *merged.CheckOutTime)
	assert.Equal(t, created.CreatedAt, merged.CreatedAt)
}

func TestAttendanceRepository_UpsertErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	id := attendance.RecordID("EMP001", "2024-05-01")

	_, err := repo.Upsert(ctx, id, func(existing *attendance.Attendance) (attendance.Attendance, error) {
		return attendance.Attendance{}, attendance.ErrNoCheckIn
	})
	assert.ErrorIs(t, err, attendance.ErrNoCheckIn)

	got, err := repo.GetByEmployeeAndDate(ctx, "EMP001", "2024-05-01")
	require.NoError(t, err)
	assert.Nil(t, got)

}

func TestAttendanceRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	created, err := repo.CreateIfAbsent(ctx, newRecord("EMP001", "Jane", "2024-05-01", attendance.StatusPresent))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, newRecord("EMP001", "Jane", "2024-05-01", attendance.StatusAbsent))
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.GetByEmployeeAndDate(ctx, "EMP001", "2024-05-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StatusPresent, got.Status)
}

func TestAttendanceRepository_ListOrderingAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	for _, r := range []attendance.Attendance{
		newRecord("EMP002", "Zed", "2024-05-01", attendance.StatusLate),
		newRecord("EMP001", "Amy", "2024-05-01", attendance.StatusPresent),
		newRecord("EMP001", "Amy", "2024-05-02", attendance.StatusAbsent),
	} {
		_, err := repo.CreateIfAbsent(ctx, r)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-05-02", all[0].Date)
	assert.Equal(t, "Amy", all[1].EmployeeName)
	assert.Equal(t, "Zed", all[2].EmployeeName)

	search := "zE"
	filtered, err := repo.List(ctx, attendance.AttendanceFilter{Search: &search})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "EMP002", filtered[0].EmployeeID)

	status := attendance.StatusAbsent
	filtered, err = repo.List(ctx, attendance.AttendanceFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2024-05-02", filtered[0].Date)

	history, err := repo.ListByEmployee(ctx, "EMP001")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-05-02", history[0].Date)
	assert.Equal(t, "2024-05-01", history[1].Date)
}

func TestAttendanceRepository_ConcurrentUpsertSerializes(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	id := attendance.RecordID("EMP001", "2024-05-01")

	var wg sync.WaitGroup
	inserts := 0
	var mu sync.Mutex
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Upsert(ctx, id, func(existing *attendance.Attendance) (attendance.Attendance, error) {
				if existing != nil {
					return *existing, nil
				}
				mu.Lock()
				inserts++
				mu.Unlock()
				return newRecord("EMP001", "Jane", "2024-05-01", attendance.StatusPresent), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, inserts)
}
