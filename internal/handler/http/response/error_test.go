package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/attendease/attendease-backend-go/internal/domain/attendance"
	"github.com/attendease/attendease-backend-go/internal/domain/auth"
	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	"github.com/attendease/attendease-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", validator.ValidationErrors{{Field: "name", Message: "name is required"}}, http.StatusUnprocessableEntity, CodeValidation},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized},
		{"account not found", auth.ErrAccountNotFound, http.StatusUnauthorized, CodeUnauthorized},
		{"revoked", auth.ErrTokenRevoked, http.StatusUnauthorized, CodeUnauthorized},
		{"no session", auth.ErrNoSession, http.StatusUnauthorized, CodeUnauthorized},
		{"not hr", ErrHRAccessRequired, http.StatusForbidden, CodeForbidden},
		{"employee not found", employee.ErrEmployeeNotFound, http.StatusNotFound, CodeNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", employee.ErrEmployeeNotFound), http.StatusNotFound, CodeNotFound},
		{"duplicate", employee.ErrDuplicateIdentifier, http.StatusConflict, CodeConflict},
		{"last admin", employee.ErrLastAdminViolation, http.StatusConflict, CodeConflict},
		{"no check-in", attendance.ErrNoCheckIn, http.StatusNotFound, CodeNotFound},
		{"bad time", attendance.ErrInvalidTimeFormat, http.StatusUnprocessableEntity, CodeValidation},
		{"id mismatch", attendance.ErrRecordIDMismatch, http.StatusUnprocessableEntity, CodeValidation},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "check_in_time", Message: attendance.ErrInvalidTimeFormat.Error(), Err: attendance.ErrInvalidTimeFormat},
	})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, attendance.ErrInvalidTimeFormat.Error(), body.Error.Details["check_in_time"])
}

func TestList(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, []string{"a", "b"}, 2)

	var body struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
		Meta    Meta     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []string{"a", "b"}, body.Data)
	assert.Equal(t, 2, body.Meta.TotalItems)
}

func TestAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	Attachment(rec, "report.xlsx", "application/octet-stream", []byte("data"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="report.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, "data", rec.Body.String())
}
