package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/attendease/attendease-backend-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
	now       func() time.Time
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepositoryImpl{
		employees: make(map[string]employee.Employee),
		now:       time.Now,
	}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLocked(newEmployee)
}

// CreateIfEmpty implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CreateIfEmpty(ctx context.Context, newEmployee employee.Employee) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.employees) > 0 {
		return false, nil
	}
	if _, err := r.insertLocked(newEmployee); err != nil {
		return false, err
	}
	return true, nil
}

func (r *employeeRepositoryImpl) insertLocked(newEmployee employee.Employee) (employee.Employee, error) {
	if _, exists := r.employees[newEmployee.ID]; exists {
		return employee.Employee{}, employee.ErrDuplicateIdentifier
	}

	now := r.now()
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.employees[newEmployee.ID] = cloneEmployee(newEmployee)
	return cloneEmployee(newEmployee), nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return cloneEmployee(e), nil
}

// GetByIDAndRole implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByIDAndRole(ctx context.Context, id string, role employee.Role) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok || e.Role != role {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return cloneEmployee(e), nil
}

// ExistsByIDAndRole implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByIDAndRole(ctx context.Context, id string, role employee.Role) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	return ok && e.Role == role, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		result = append(result, cloneEmployee(e))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id string, fn func(existing *employee.Employee) error) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	working := cloneEmployee(stored)
	if err := fn(&working); err != nil {
		return employee.Employee{}, err
	}

	working.ID = stored.ID
	working.CreatedAt = stored.CreatedAt
	working.UpdatedAt = r.now()
	r.employees[id] = cloneEmployee(working)
	return working, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}

	if e.IsHR() {
		hrCount := 0
		for _, other := range r.employees {
			if other.IsHR() {
				hrCount++
			}
		}
		if hrCount <= 1 {
			return employee.ErrLastAdminViolation
		}
	}

	delete(r.employees, id)
	return nil
}

func cloneEmployee(e employee.Employee) employee.Employee {
	e.PasswordHash = cloneString(e.PasswordHash)
	e.Email = cloneString(e.Email)
	e.Phone = cloneString(e.Phone)
	if e.IsPhoneVerified != nil {
		v := *e.IsPhoneVerified
		e.IsPhoneVerified = &v
	}
	return e
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
