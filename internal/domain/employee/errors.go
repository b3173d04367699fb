package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrDuplicateIdentifier = errors.New("employee ID already exists")
	ErrLastAdminViolation  = errors.New("cannot delete the last HR admin")
	ErrInvalidRole         = errors.New("role must be HR or Employee")
)
