package employee

import (
	"time"

	"github.com/attendease/attendease-backend-go/internal/pkg/validator"
)

const (
	MinPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and refuses longer input
	MaxPasswordLength = 72
)

func validatePassword(password string) *validator.ValidationError {
	switch {
	case len(password) < MinPasswordLength:
		return &validator.ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	case len(password) > MaxPasswordLength:
		return &validator.ValidationError{Field: "password", Message: "password must be at most 72 bytes"}
	}
	return nil
}

type CreateEmployeeRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Role     Role    `json:"role"`
	Password string  `json:"password"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: ErrInvalidRole.Error(),
		})
	}
	if err := validatePassword(r.Password); err != nil {
		errs = append(errs, *err)
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HRSignUpRequest is the public self-registration form for HR accounts.
type HRSignUpRequest struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
}

func (r *HRSignUpRequest) Validate() error {
	create := r.ToCreateRequest()
	var errs validator.ValidationErrors
	if err := create.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	if r.Password != r.ConfirmPassword {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "passwords do not match",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *HRSignUpRequest) ToCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		ID:       r.ID,
		Name:     r.Name,
		Role:     RoleHR,
		Password: r.Password,
		Email:    r.Email,
		Phone:    r.Phone,
	}
}

// UpdateEmployeeRequest carries a partial update. Nil fields are left untouched;
// an empty Password keeps the stored credential.
type UpdateEmployeeRequest struct {
	ID              string  `json:"-"`
	Name            *string `json:"name,omitempty"`
	Role            *Role   `json:"role,omitempty"`
	Password        *string `json:"password,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	IsPhoneVerified *bool   `json:"is_phone_verified,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Role != nil && !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: ErrInvalidRole.Error(),
		})
	}
	if r.Password != nil && *r.Password != "" {
		if err := validatePassword(*r.Password); err != nil {
			errs = append(errs, *err)
		}
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Role            Role    `json:"role"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	IsPhoneVerified *bool   `json:"is_phone_verified,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              e.ID,
		Name:            e.Name,
		Role:            e.Role,
		Email:           e.Email,
		Phone:           e.Phone,
		IsPhoneVerified: e.IsPhoneVerified,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       e.UpdatedAt.Format(time.RFC3339),
	}
}

type ExistsResponse struct {
	ID     string `json:"id"`
	Role   Role   `json:"role"`
	Exists bool   `json:"exists"`
}
