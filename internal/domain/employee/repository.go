package employee

import "context"

type EmployeeRepository interface {
	// Create inserts a new employee. Returns ErrDuplicateIdentifier when the ID is taken.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	// CreateIfEmpty inserts newEmployee only when the directory has no employees at all.
	CreateIfEmpty(ctx context.Context, newEmployee Employee) (bool, error)

	GetByID(ctx context.Context, id string) (Employee, error)
	GetByIDAndRole(ctx context.Context, id string, role Role) (Employee, error)
	ExistsByIDAndRole(ctx context.Context, id string, role Role) (bool, error)
	List(ctx context.Context) ([]Employee, error)

	// Update loads the employee, applies fn and stores the result as one atomic step.
	Update(ctx context.Context, id string, fn func(existing *Employee) error) (Employee, error)

	// Delete removes the employee. The sole remaining HR employee is never
	// removed; that attempt returns ErrLastAdminViolation.
	Delete(ctx context.Context, id string) error
}
