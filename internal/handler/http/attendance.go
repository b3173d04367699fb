package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendease/attendease-backend-go/internal/domain/attendance"
	"github.com/attendease/attendease-backend-go/internal/domain/auth"
	"github.com/attendease/attendease-backend-go/internal/handler/http/response"
	"github.com/attendease/attendease-backend-go/internal/pkg/export"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByDate(w http.ResponseWriter, r *http.Request)
	GetByEmployeeAndDate(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	authService       auth.AuthService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, authService auth.AuthService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		authService:       authService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.MarkCheckIn(r.Context(), user.ID, user.Name)
	if err != nil {
		slog.Error("CheckIn service error", "employee_id", user.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.MarkCheckOut(r.Context(), user.ID)
	if err != nil {
		slog.Warn("CheckOut service error", "employee_id", user.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", record)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.GetTodaysAttendanceForEmployee(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.GetAttendanceHistory(r.Context(), user.ID)
	if err != nil {
		slog.Error("GetMyAttendance service error", "employee_id", user.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.List(w, records, len(records))
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.GetAllAttendanceRecords(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, records, len(records))
}

// GetByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByDate(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.GetAttendanceByDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, records, len(records))
}

// GetByEmployeeAndDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByEmployeeAndDate(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.GetAttendanceByEmployeeAndDate(r.Context(), chi.URLParam(r, "employeeId"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// Upsert implements AttendanceHandler.
func (h *attendanceHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("UpsertAttendance validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.UpsertAttendanceRecord(r.Context(), req)
	if err != nil {
		slog.Error("UpsertAttendance service error", "employee_id", req.EmployeeID, "date", req.Date, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record saved", record)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.GetAllAttendanceRecords(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteAttendanceXLSX(&buf, records); err != nil {
		slog.Error("ExportAttendance error", "error", err)
		response.InternalServerError(w, "Failed to export attendance records")
		return
	}

	response.Attachment(w, export.AttendanceFileName, export.ContentTypeXLSX, buf.Bytes())
}

func filterFromQuery(r *http.Request) attendance.AttendanceFilter {
	var filter attendance.AttendanceFilter
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := attendance.Status(status)
		filter.Status = &s
	}
	return filter
}
