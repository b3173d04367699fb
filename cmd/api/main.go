package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendease/attendease-backend-go/internal/config"
	"github.com/attendease/attendease-backend-go/internal/domain/attendance"
	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	appHTTP "github.com/attendease/attendease-backend-go/internal/handler/http"
	"github.com/attendease/attendease-backend-go/internal/pkg/cron"
	"github.com/attendease/attendease-backend-go/internal/pkg/database"
	"github.com/attendease/attendease-backend-go/internal/pkg/jwt"
	"github.com/attendease/attendease-backend-go/internal/repository/memory"
	"github.com/attendease/attendease-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendease/attendease-backend-go/internal/service/attendance"
	serviceAuth "github.com/attendease/attendease-backend-go/internal/service/auth"
	employeeService "github.com/attendease/attendease-backend-go/internal/service/employee"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/sync/errgroup"
)

const (
	appName         = "attendease-api"
	appVersion      = "v1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		employeeRepo   employee.EmployeeRepository
		attendanceRepo attendance.AttendanceRepository
	)
	switch cfg.Storage.Type {
	case config.StoragePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("error connecting to database: %w", err)
		}
		defer db.Close()

		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("error preparing schema: %w", err)
		}
		employeeRepo = postgresql.NewEmployeeRepository(db)
		attendanceRepo = postgresql.NewAttendanceRepository(db)
	default:
		slog.Warn("Using in-memory storage, data is lost on restart")
		employeeRepo = memory.NewEmployeeRepository()
		attendanceRepo = memory.NewAttendanceRepository()
	}
	slog.Info("Storage ready", "type", cfg.Storage.Type)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("error creating jwt service: %w", err)
	}

	authService := serviceAuth.NewAuthService(employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, location, time.Now)

	if _, err := authService.Bootstrap(ctx); err != nil {
		return fmt.Errorf("error creating default admin: %w", err)
	}

	scheduler := cron.NewScheduler(location)
	if err := cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler, cfg.Jobs.AbsenceSweepCron); err != nil {
		return fmt.Errorf("error scheduling jobs: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:      logger,
			LogLevel:    cfg.SlogLevel(),
			FrontendURL: cfg.App.FrontendURL,
		},
		JWTService,
		authService,
		appHTTP.NewAuthHandler(authService, employeeSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc, authService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "timezone", location.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
