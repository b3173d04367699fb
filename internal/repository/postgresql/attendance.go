package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attendease/attendease-backend-go/internal/domain/attendance"
	"github.com/attendease/attendease-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `id, employee_id, employee_name, date, check_in_time, check_out_time,
	total_hours, status, remarks, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.EmployeeName, &att.Date, &att.CheckInTime, &att.CheckOutTime,
		&att.TotalHours, &att.Status, &att.Remarks, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return records, nil
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, id string, fn func(existing *attendance.Attendance) (attendance.Attendance, error)) (attendance.Attendance, error) {
	var saved attendance.Attendance
	err := WithTransaction(ctx, a.db, func(ctx context.Context, tx pgx.Tx) error {
		// the row may not exist yet, so FOR UPDATE alone cannot serialize inserts
		if err := lockKey(ctx, tx, "attendance:"+id); err != nil {
			return err
		}

		var existing *attendance.Attendance
		current, err := scanAttendance(tx.QueryRow(ctx,
			`SELECT `+attendanceColumns+` FROM attendances WHERE id = $1`, id))
		switch {
		case err == nil:
			existing = &current
		case errors.Is(err, pgx.ErrNoRows):
		default:
			return fmt.Errorf("failed to load attendance %s: %w", id, err)
		}

		next, err := fn(existing)
		if err != nil {
			return err
		}

		saved, err = scanAttendance(tx.QueryRow(ctx, `
			INSERT INTO attendances (
				id, employee_id, employee_name, date, check_in_time, check_out_time,
				total_hours, status, remarks
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				employee_id = EXCLUDED.employee_id,
				employee_name = EXCLUDED.employee_name,
				date = EXCLUDED.date,
				check_in_time = EXCLUDED.check_in_time,
				check_out_time = EXCLUDED.check_out_time,
				total_hours = EXCLUDED.total_hours,
				status = EXCLUDED.status,
				remarks = EXCLUDED.remarks,
				updated_at = NOW()
			RETURNING `+attendanceColumns,
			id, next.EmployeeID, next.EmployeeName, next.Date, next.CheckInTime, next.CheckOutTime,
			next.TotalHours, next.Status, next.Remarks,
		))
		if err != nil {
			return fmt.Errorf("failed to save attendance %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	return saved, nil
}

// CreateIfAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, record attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		INSERT INTO attendances (
			id, employee_id, employee_name, date, check_in_time, check_out_time,
			total_hours, status, remarks
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT DO NOTHING
	`,
		record.ID, record.EmployeeID, record.EmployeeName, record.Date, record.CheckInTime,
		record.CheckOutTime, record.TotalHours, record.Status, record.Remarks,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create attendance %s: %w", record.ID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendances WHERE employee_id = $1 AND date = $2`,
		employeeID, date,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance for employee %s on %s: %w", employeeID, date, err)
	}
	return &att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(employee_name ILIKE $%d OR employee_id ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+escapeLike(*filter.Search)+"%")
		argPos++
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("date = $%d", argPos))
		args = append(args, *filter.Date)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendances`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, employee_name ASC, employee_id ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	return collectAttendances(rows)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendances WHERE employee_id = $1 ORDER BY date DESC`,
		employeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances for employee %s: %w", employeeID, err)
	}
	return collectAttendances(rows)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
