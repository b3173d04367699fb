package employee

import "time"

type Role string

const (
	RoleHR       Role = "HR"       // Manages employees and attendance records
	RoleEmployee Role = "Employee" // Marks own attendance
)

func (r Role) IsValid() bool {
	return r == RoleHR || r == RoleEmployee
}

type Employee struct {
	ID              string
	Name            string
	Role            Role
	PasswordHash    *string
	Email           *string
	Phone           *string
	IsPhoneVerified *bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsHR checks if employee holds the HR role
func (e *Employee) IsHR() bool {
	return e.Role == RoleHR
}
