package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/attendease/attendease-backend-go/internal/domain/attendance"
	"github.com/attendease/attendease-backend-go/internal/domain/auth"
	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	"github.com/attendease/attendease-backend-go/internal/pkg/validator"
)

// ErrHRAccessRequired is returned to callers without the HR role
var ErrHRAccessRequired = errors.New("HR access required")

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid password for this account")
	case errors.Is(err, auth.ErrAccountNotFound):
		Unauthorized(w, "No account found with this employee ID and role")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrNoSession):
		Unauthorized(w, "Not logged in")
	case errors.Is(err, ErrHRAccessRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDuplicateIdentifier):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrLastAdminViolation):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrInvalidRole):
		ValidationError(w, map[string]string{"role": err.Error()})

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoCheckIn):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidTimeFormat):
		ValidationError(w, map[string]string{"time": err.Error()})
	case errors.Is(err, attendance.ErrRecordIDMismatch):
		ValidationError(w, map[string]string{"id": err.Error()})
	case errors.Is(err, attendance.ErrInvalidStatus):
		ValidationError(w, map[string]string{"status": err.Error()})

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
