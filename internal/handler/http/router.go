package http

import (
	"log/slog"
	"net/http"

	"github.com/attendease/attendease-backend-go/internal/domain/auth"
	"github.com/attendease/attendease-backend-go/internal/handler/http/middleware"
	"github.com/attendease/attendease-backend-go/internal/handler/http/response"
	"github.com/attendease/attendease-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger      *slog.Logger
	LogLevel    slog.Level
	FrontendURL string
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, authService auth.AuthService, authHandler AuthHandler, employeeHandler EmployeeHandler, attendanceHandler AttendanceHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  cfg.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/hr-signup", authHandler.HRSignUp)

			// Logout succeeds even for a missing or revoked token
			r.With(jwtauth.Verifier(JWTService.JWTAuth())).Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(authService))
				r.Get("/me", authHandler.Me)
			})
		})

		// Used by the login form to tell a missing account from a wrong password
		r.Get("/employees/exists", employeeHandler.Exists)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(authService))

			r.Post("/attendance/check-in", attendanceHandler.CheckIn)
			r.Post("/attendance/check-out", attendanceHandler.CheckOut)
			r.Get("/attendance/today", attendanceHandler.GetToday)
			r.Get("/attendance/my", attendanceHandler.GetMyAttendance)

			// HR only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireHR)

				r.Get("/employees", employeeHandler.List)
				r.Post("/employees", employeeHandler.Create)
				r.Get("/employees/{id}", employeeHandler.Get)
				r.Put("/employees/{id}", employeeHandler.Update)
				r.Delete("/employees/{id}", employeeHandler.Delete)

				r.Get("/attendance", attendanceHandler.List)
				r.Put("/attendance", attendanceHandler.Upsert)
				r.Get("/attendance/export.xlsx", attendanceHandler.Export)
				r.Get("/attendance/date/{date}", attendanceHandler.GetByDate)
				r.Get("/attendance/employees/{employeeId}/dates/{date}", attendanceHandler.GetByEmployeeAndDate)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
