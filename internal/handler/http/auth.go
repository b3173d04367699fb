package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendease/attendease-backend-go/internal/domain/auth"
	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	"github.com/attendease/attendease-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	HRSignUp(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService     auth.AuthService
	employeeService employee.EmployeeService
}

func NewAuthHandler(authService auth.AuthService, employeeService employee.EmployeeService) AuthHandler {
	return &AuthHandlerImpl{
		authService:     authService,
		employeeService: employeeService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		slog.Error("Login validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login failed", "employee_id", loginReq.EmployeeID, "role", loginReq.Role, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User logged in", "employee_id", tokenResponse.User.ID, "role", tokenResponse.User.Role)
	response.SuccessWithMessage(w, "Login successful", tokenResponse)
}

// HRSignUp implements AuthHandler.
func (a *AuthHandlerImpl) HRSignUp(w http.ResponseWriter, r *http.Request) {
	var signUpReq employee.HRSignUpRequest

	if err := json.NewDecoder(r.Body).Decode(&signUpReq); err != nil {
		slog.Error("HRSignUp decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := signUpReq.Validate(); err != nil {
		slog.Error("HRSignUp validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	created, err := a.employeeService.AddEmployee(r.Context(), signUpReq.ToCreateRequest())
	if err != nil {
		slog.Error("HRSignUp service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("HR account registered", "employee_id", created.ID)
	response.Created(w, "HR account created successfully", created)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.authService.Logout(r.Context()); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logout successful", nil)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.authService.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user)
}
