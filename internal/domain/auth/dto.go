package auth

import (
	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	"github.com/attendease/attendease-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	EmployeeID string        `json:"employee_id"`
	Password   string        `json:"password"`
	Role       employee.Role `json:"role"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Password == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}
	if !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: employee.ErrInvalidRole.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SessionUser is the reduced view of an employee that identifies the caller.
// It never carries the credential.
type SessionUser struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Role            employee.Role `json:"role"`
	Email           *string       `json:"email,omitempty"`
	Phone           *string       `json:"phone,omitempty"`
	IsPhoneVerified *bool         `json:"is_phone_verified,omitempty"`
}

func (u SessionUser) IsHR() bool {
	return u.Role == employee.RoleHR
}

func NewSessionUser(e employee.Employee) SessionUser {
	return SessionUser{
		ID:              e.ID,
		Name:            e.Name,
		Role:            e.Role,
		Email:           e.Email,
		Phone:           e.Phone,
		IsPhoneVerified: e.IsPhoneVerified,
	}
}

type TokenResponse struct {
	AccessToken          string      `json:"access_token"`
	AccessTokenExpiresIn int64       `json:"access_token_expires_in"`
	User                 SessionUser `json:"user"`
}
