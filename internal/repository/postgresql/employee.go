package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	"github.com/attendease/attendease-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const employeeColumns = `id, name, role, password_hash, email, phone, is_phone_verified, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.Role, &e.PasswordHash, &e.Email, &e.Phone, &e.IsPhoneVerified,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, name, role, password_hash, email, phone, is_phone_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.Name, newEmployee.Role, newEmployee.PasswordHash,
		newEmployee.Email, newEmployee.Phone, newEmployee.IsPhoneVerified,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrDuplicateIdentifier
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// CreateIfEmpty implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CreateIfEmpty(ctx context.Context, newEmployee employee.Employee) (bool, error) {
	var created bool
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockKey(ctx, tx, "employees:bootstrap"); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO employees (id, name, role, password_hash, email, phone, is_phone_verified)
			SELECT $1, $2, $3, $4, $5, $6, $7
			WHERE NOT EXISTS (SELECT 1 FROM employees)
		`,
			newEmployee.ID, newEmployee.Name, newEmployee.Role, newEmployee.PasswordHash,
			newEmployee.Email, newEmployee.Phone, newEmployee.IsPhoneVerified,
		)
		if err != nil {
			return fmt.Errorf("failed to seed employee: %w", err)
		}
		created = tag.RowsAffected() == 1
		return nil
	})
	return created, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return e, nil
}

// GetByIDAndRole implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByIDAndRole(ctx context.Context, id string, role employee.Role) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1 AND role = $2`, id, role))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return e, nil
}

// ExistsByIDAndRole implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByIDAndRole(ctx context.Context, id string, role employee.Role) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1 AND role = $2)`, id, role,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}
	return exists, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id string, fn func(existing *employee.Employee) error) (employee.Employee, error) {
	var updated employee.Employee
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		current, err := scanEmployee(tx.QueryRow(ctx,
			`SELECT `+employeeColumns+` FROM employees WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return employee.ErrEmployeeNotFound
			}
			return fmt.Errorf("failed to load employee with id %s: %w", id, err)
		}

		if err := fn(&current); err != nil {
			return err
		}

		updated, err = scanEmployee(tx.QueryRow(ctx, `
			UPDATE employees
			SET name = $2, role = $3, password_hash = $4, email = $5, phone = $6,
				is_phone_verified = $7, updated_at = NOW()
			WHERE id = $1
			RETURNING `+employeeColumns,
			id, current.Name, current.Role, current.PasswordHash, current.Email, current.Phone,
			current.IsPhoneVerified,
		))
		if err != nil {
			return fmt.Errorf("failed to update employee with id %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		// every delete takes the same lock so two HR removals cannot both
		// observe a second admin
		if err := lockKey(ctx, tx, "employees:delete"); err != nil {
			return err
		}

		var role employee.Role
		err := tx.QueryRow(ctx, `SELECT role FROM employees WHERE id = $1`, id).Scan(&role)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return employee.ErrEmployeeNotFound
			}
			return fmt.Errorf("failed to load employee with id %s: %w", id, err)
		}

		if role == employee.RoleHR {
			var hrCount int
			err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE role = $1`, employee.RoleHR).Scan(&hrCount)
			if err != nil {
				return fmt.Errorf("failed to count HR employees: %w", err)
			}
			if hrCount <= 1 {
				return employee.ErrLastAdminViolation
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
		}
		return nil
	})
}
