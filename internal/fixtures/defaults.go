package fixtures

import (
	"github.com/attendease/attendease-backend-go/internal/domain/employee"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

// ==========================================
// DEFAULT HR ADMIN
// ==========================================

const (
	DefaultAdminID       = "HR001"
	DefaultAdminName     = "Admin HR"
	DefaultAdminPassword = "hrpassword"
	DefaultAdminEmail    = "hr@example.com"
)

// GetDefaultAdmin returns the HR account seeded into an empty directory.
// The password is plain text; the caller hashes it before storing.
func GetDefaultAdmin() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		ID:       DefaultAdminID,
		Name:     DefaultAdminName,
		Role:     employee.RoleHR,
		Password: DefaultAdminPassword,
		Email:    strPtr(DefaultAdminEmail),
	}
}

// DefaultAdminPhoneVerified is the initial verification flag of the seeded admin.
func DefaultAdminPhoneVerified() *bool {
	return boolPtr(false)
}
