package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	"github.com/attendease/attendease-backend-go/internal/handler/http/response"
	"github.com/attendease/attendease-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Exists(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.GetAllEmployees(r.Context())
	if err != nil {
		slog.Error("ListEmployees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.List(w, employees, len(employees))
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.employeeService.GetEmployeeByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("CreateEmployee validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	created, err := h.employeeService.AddEmployee(r.Context(), req)
	if err != nil {
		slog.Error("CreateEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

// Update implements EmployeeHandler.
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		slog.Error("UpdateEmployee validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	updated, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		slog.Error("UpdateEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// Delete implements EmployeeHandler.
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.employeeService.RemoveEmployee(r.Context(), id); err != nil {
		slog.Error("DeleteEmployee service error", "employee_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// Exists implements EmployeeHandler.
func (h *employeeHandlerImpl) Exists(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	role := employee.Role(r.URL.Query().Get("role"))

	if validator.IsEmpty(id) {
		response.ValidationError(w, map[string]string{"id": "id is required"})
		return
	}

	exists, err := h.employeeService.DoesIdentifierExistWithRole(r.Context(), id, role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ExistsResponse{ID: id, Role: role, Exists: exists})
}
