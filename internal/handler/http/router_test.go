package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/attendease/attendease-backend-go/internal/fixtures"
	"github.com/attendease/attendease-backend-go/internal/pkg/export"
	"github.com/attendease/attendease-backend-go/internal/pkg/jwt"
	"github.com/attendease/attendease-backend-go/internal/repository/memory"
	attendanceService "github.com/attendease/attendease-backend-go/internal/service/attendance"
	authService "github.com/attendease/attendease-backend-go/internal/service/auth"
	employeeService "github.com/attendease/attendease-backend-go/internal/service/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestAccessExp = "1h"
	handlerTestSecret    = "test-secret-key-for-jwt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		TotalItems int `json:"total_items"`
	} `json:"meta"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	employeeRepo := memory.NewEmployeeRepository()
	attendanceRepo := memory.NewAttendanceRepository()

	jwtService, err := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	require.NoError(t, err)

	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, time.UTC, func() time.Time { return fixed })

	_, err = authSvc.Bootstrap(context.Background())
	require.NoError(t, err)

	router := NewRouter(
		RouterConfig{FrontendURL: "http://localhost:3000"},
		jwtService,
		authSvc,
		NewAuthHandler(authSvc, employeeSvc),
		NewEmployeeHandler(employeeSvc),
		NewAttendanceHandler(attendanceSvc, authSvc),
	)
	return &testServer{t: t, handler: router}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func (s *testServer) login(id, password, role string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"employee_id": id,
		"password":    password,
		"role":        role,
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode(s.t, rec)
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(s.t, tokens.AccessToken)
	return tokens.AccessToken
}

func TestRouter_LoginFailures(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"employee_id": fixtures.DefaultAdminID,
		"password":    fixtures.DefaultAdminPassword,
		"role":        "Employee",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decode(t, rec).Success)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"employee_id": fixtures.DefaultAdminID,
		"password":    "nope",
		"role":        "HR",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"employee_id": "HR001"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_EmployeeExists(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/v1/employees/exists?id=HR001&role=HR", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var exists struct {
		Exists bool `json:"exists"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &exists))
	assert.True(t, exists.Exists)

	rec = s.do(http.MethodGet, "/api/v1/employees/exists?id=HR001&role=Employee", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &exists))
	assert.False(t, exists.Exists)
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/attendance/check-in", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_EmployeeLifecycle(t *testing.T) {
	s := newTestServer(t)
	hrToken := s.login(fixtures.DefaultAdminID, fixtures.DefaultAdminPassword, "HR")

	newEmployee := map[string]string{
		"id":       "EMP001",
		"name":     "Jane Doe",
		"role":     "Employee",
		"password": "secret1",
		"email":    "jane@example.com",
	}
	rec := s.do(http.MethodPost, "/api/v1/employees", hrToken, newEmployee)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/employees", hrToken, newEmployee)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/employees", hrToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.TotalItems)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.do(http.MethodPut, "/api/v1/employees/EMP001", hrToken, map[string]string{"name": "Jane Smith"})
	require.Equal(t, http.StatusOK, rec.Code)

	// the unchanged password still works after an edit without one
	employeeToken := s.login("EMP001", "secret1", "Employee")

	rec = s.do(http.MethodGet, "/api/v1/employees", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/employees/"+fixtures.DefaultAdminID, hrToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/employees/EMP001", hrToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/employees/EMP001", hrToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_HRSignUp(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/v1/auth/hr-signup", "", map[string]string{
		"id":               "HR002",
		"name":             "Second HR",
		"password":         "secret1",
		"confirm_password": "different",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/hr-signup", "", map[string]string{
		"id":               "HR002",
		"name":             "Second HR",
		"password":         "secret1",
		"confirm_password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	s.login("HR002", "secret1", "HR")
}

func TestRouter_AttendanceFlow(t *testing.T) {
	s := newTestServer(t)
	hrToken := s.login(fixtures.DefaultAdminID, fixtures.DefaultAdminPassword, "HR")

	rec := s.do(http.MethodPost, "/api/v1/attendance/check-out", hrToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decode(t, rec).Success)

	rec = s.do(http.MethodGet, "/api/v1/attendance/today", hrToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/attendance/check-in", hrToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var record struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		CheckInTime string `json:"check_in_time"`
		TotalHours  string `json:"total_hours"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &record))
	assert.Equal(t, "HR001-2024-05-01", record.ID)
	assert.Equal(t, "Present", record.Status)
	assert.Equal(t, "09:00:00", record.CheckInTime)

	rec = s.do(http.MethodPut, "/api/v1/attendance", hrToken, map[string]string{
		"employee_id":    "HR001",
		"date":           "2024-05-01",
		"check_out_time": "5:30",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/attendance", hrToken, map[string]string{
		"employee_id":    "HR001",
		"date":           "2024-05-01",
		"check_out_time": "17:30",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &record))
	assert.Equal(t, "8h 30m", record.TotalHours)

	rec = s.do(http.MethodPut, "/api/v1/attendance", hrToken, map[string]string{
		"id":          "HR001-2024-04-30",
		"employee_id": "HR001",
		"date":        "2024-05-01",
		"status":      "Absent",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/attendance?status=Present&search=admin", hrToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode(t, rec).Meta.TotalItems)

	rec = s.do(http.MethodGet, "/api/v1/attendance/date/2024-05-01", hrToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode(t, rec).Meta.TotalItems)

	rec = s.do(http.MethodGet, "/api/v1/attendance/employees/HR001/dates/2024-05-01", hrToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/attendance/my", hrToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode(t, rec).Meta.TotalItems)

	rec = s.do(http.MethodGet, "/api/v1/attendance/export.xlsx", hrToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), export.AttendanceFileName)
	assert.NotZero(t, rec.Body.Len())
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login(fixtures.DefaultAdminID, fixtures.DefaultAdminPassword, "HR")

	rec := s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fixtures.DefaultAdminName)

	rec = s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// logout is unconditional
	rec = s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RemovedEmployeeTokenStopsWorking(t *testing.T) {
	s := newTestServer(t)
	hrToken := s.login(fixtures.DefaultAdminID, fixtures.DefaultAdminPassword, "HR")

	for _, e := range []map[string]string{
		{"id": "HR002", "name": "Second HR", "role": "HR", "password": "secret1"},
		{"id": "EMP9", "name": "Temp Worker", "role": "Employee", "password": "secret1"},
	} {
		rec := s.do(http.MethodPost, "/api/v1/employees", hrToken, e)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	secondHRToken := s.login("HR002", "secret1", "HR")
	tempToken := s.login("EMP9", "secret1", "Employee")

	rec := s.do(http.MethodGet, "/api/v1/employees", secondHRToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, id := range []string{"HR002", "EMP9"} {
		rec = s.do(http.MethodDelete, "/api/v1/employees/"+id, hrToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodGet, "/api/v1/employees", secondHRToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(http.MethodPost, "/api/v1/employees", secondHRToken, map[string]string{
		"id": "EMP10", "name": "Sneaky", "role": "Employee", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/attendance/check-in", tempToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(http.MethodGet, "/api/v1/auth/me", tempToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/attendance/employees/EMP9/dates/2024-05-01", hrToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_DemotedHRLosesAccess(t *testing.T) {
	s := newTestServer(t)
	hrToken := s.login(fixtures.DefaultAdminID, fixtures.DefaultAdminPassword, "HR")

	rec := s.do(http.MethodPost, "/api/v1/employees", hrToken, map[string]string{
		"id": "HR002", "name": "Second HR", "role": "HR", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	secondHRToken := s.login("HR002", "secret1", "HR")

	rec = s.do(http.MethodPut, "/api/v1/employees/HR002", hrToken, map[string]string{"role": "Employee"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/employees", secondHRToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// a fresh login under the new role is an ordinary employee
	employeeToken := s.login("HR002", "secret1", "Employee")
	rec = s.do(http.MethodGet, "/api/v1/employees", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
