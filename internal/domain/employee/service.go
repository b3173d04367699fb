package employee

import (
	"context"
)

// EmployeeService defines business logic for the employee directory
type EmployeeService interface {
	// AddEmployee creates a new employee (HR only)
	AddEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee merges the provided fields onto an existing employee (HR only)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// RemoveEmployee deletes an employee, refusing to remove the last HR
	RemoveEmployee(ctx context.Context, id string) error

	GetAllEmployees(ctx context.Context) ([]EmployeeResponse, error)
	GetEmployeeByID(ctx context.Context, id string) (EmployeeResponse, error)

	// DoesIdentifierExistWithRole is used by login to tell "no such account"
	// apart from "wrong password"
	DoesIdentifierExistWithRole(ctx context.Context, id string, role Role) (bool, error)
}
