package employee

import (
	"context"
	"fmt"

	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
}

func NewEmployeeService(employeeRepository employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepository,
	}
}

func (s *EmployeeServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// AddEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AddEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newEmployee := employee.Employee{
		ID:           req.ID,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: &hashed,
		Email:        emptyToNil(req.Email),
		Phone:        emptyToNil(req.Phone),
	}
	if newEmployee.Phone != nil {
		verified := false
		newEmployee.IsPhoneVerified = &verified
	}

	created, err := s.EmployeeRepository.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Hash outside the repository callback, which may hold a lock
	var newHash *string
	if req.Password != nil && *req.Password != "" {
		hashed, err := s.hashPassword(*req.Password)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		newHash = &hashed
	}

	updated, err := s.EmployeeRepository.Update(ctx, req.ID, func(e *employee.Employee) error {
		if req.Name != nil {
			e.Name = *req.Name
		}
		if req.Role != nil {
			e.Role = *req.Role
		}
		if newHash != nil {
			e.PasswordHash = newHash
		}
		if req.Email != nil {
			e.Email = emptyToNil(req.Email)
		}
		if req.Phone != nil {
			e.Phone = emptyToNil(req.Phone)
		}
		if req.IsPhoneVerified != nil {
			e.IsPhoneVerified = req.IsPhoneVerified
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(updated), nil
}

// RemoveEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RemoveEmployee(ctx context.Context, id string) error {
	return s.EmployeeRepository.Delete(ctx, id)
}

// GetAllEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetAllEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

// GetEmployeeByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeeByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// DoesIdentifierExistWithRole implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DoesIdentifierExistWithRole(ctx context.Context, id string, role employee.Role) (bool, error) {
	if !role.IsValid() {
		return false, employee.ErrInvalidRole
	}
	return s.EmployeeRepository.ExistsByIDAndRole(ctx, id, role)
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
