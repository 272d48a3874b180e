package cmd

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

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/academic"
	academicPostgres "github.com/frahmantamala/edumaster/internal/academic/postgres"
	"github.com/frahmantamala/edumaster/internal/attendance"
	attendancePostgres "github.com/frahmantamala/edumaster/internal/attendance/postgres"
	"github.com/frahmantamala/edumaster/internal/audit"
	auditPostgres "github.com/frahmantamala/edumaster/internal/audit/postgres"
	"github.com/frahmantamala/edumaster/internal/auth"
	authPostgres "github.com/frahmantamala/edumaster/internal/auth/postgres"
	"github.com/frahmantamala/edumaster/internal/core/events"
	"github.com/frahmantamala/edumaster/internal/exam"
	examPostgres "github.com/frahmantamala/edumaster/internal/exam/postgres"
	"github.com/frahmantamala/edumaster/internal/fee"
	feePostgres "github.com/frahmantamala/edumaster/internal/fee/postgres"
	"github.com/frahmantamala/edumaster/internal/library"
	libraryPostgres "github.com/frahmantamala/edumaster/internal/library/postgres"
	"github.com/frahmantamala/edumaster/internal/message"
	messagePostgres "github.com/frahmantamala/edumaster/internal/message/postgres"
	"github.com/frahmantamala/edumaster/internal/permission"
	permissionPostgres "github.com/frahmantamala/edumaster/internal/permission/postgres"
	"github.com/frahmantamala/edumaster/internal/promotion"
	promotionPostgres "github.com/frahmantamala/edumaster/internal/promotion/postgres"
	"github.com/frahmantamala/edumaster/internal/report"
	reportPostgres "github.com/frahmantamala/edumaster/internal/report/postgres"
	"github.com/frahmantamala/edumaster/internal/role"
	rolePostgres "github.com/frahmantamala/edumaster/internal/role/postgres"
	"github.com/frahmantamala/edumaster/internal/scheduler"
	"github.com/frahmantamala/edumaster/internal/schoolclass"
	schoolclassPostgres "github.com/frahmantamala/edumaster/internal/schoolclass/postgres"
	"github.com/frahmantamala/edumaster/internal/student"
	studentPostgres "github.com/frahmantamala/edumaster/internal/student/postgres"
	"github.com/frahmantamala/edumaster/internal/teacher"
	teacherPostgres "github.com/frahmantamala/edumaster/internal/teacher/postgres"
	"github.com/frahmantamala/edumaster/internal/transit"
	transitPostgres "github.com/frahmantamala/edumaster/internal/transit/postgres"
	"github.com/frahmantamala/edumaster/internal/transport"
	"github.com/frahmantamala/edumaster/internal/transport/rest"
	"github.com/frahmantamala/edumaster/internal/transport/swagger"
	"github.com/frahmantamala/edumaster/internal/user"
	userPostgres "github.com/frahmantamala/edumaster/internal/user/postgres"
	"github.com/frahmantamala/edumaster/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP API. Overdue jobs run in-process when the scheduler is enabled.`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config    *internal.Config
	DB        *sqlx.DB
	Gorm      *gorm.DB
	EventBus  *events.EventBus
	Handlers  rest.Handlers
	Fees      *fee.Service
	Library   *library.Service
	Spec      *swagger.Spec
	Router    *chi.Mux
	Scheduler *scheduler.Scheduler
	Logger    *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	log := deps.Logger

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, rest.Options{
		AllowedOrigins: deps.Config.Server.AllowedOrigins,
		Spec:           deps.Spec,
	})

	if deps.Config.Scheduler.Enabled {
		deps.Scheduler, err = newScheduler(deps, log)
		if err != nil {
			log.Error("failed to schedule jobs", "error", err)
			os.Exit(1)
		}
		deps.Scheduler.Start()
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "address", addr, "env", deps.Config.Env)
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		log.Info("received signal, shutting down", "signal", sig)
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			_ = deps.DB.Close()
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", "error", err)
	}
	if deps.Scheduler != nil {
		deps.Scheduler.Shutdown(ctx)
	}
	if err := deps.EventBus.Shutdown(ctx); err != nil {
		log.Error("event bus shutdown error", "error", err)
	}
	if err := deps.DB.Close(); err != nil {
		log.Error("database close error", "error", err)
	}

	log.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.LoggerWrapper()

	db, gdb, err := initDB(config.Database, config.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps := &Dependencies{
		Config:   config,
		DB:       db,
		Gorm:     gdb,
		EventBus: newEventBus(gdb, log),
		Router:   chi.NewRouter(),
		Logger:   log,
	}
	buildHandlers(deps)

	spec, err := swagger.Load(context.Background(), config.Server.OpenAPIPath)
	if err != nil {
		log.Warn("openapi document not served", "path", config.Server.OpenAPIPath, "error", err)
	} else {
		deps.Spec = spec
	}

	return deps, nil
}

// newEventBus returns a bus whose every domain event is recorded in the
// activity log.
func newEventBus(gdb *gorm.DB, log *slog.Logger) *events.EventBus {
	bus := events.NewEventBus(log)
	audit.NewEventHandler(auditPostgres.NewActivityRepository(gdb), log).RegisterEventHandlers(bus)
	return bus
}

func buildHandlers(deps *Dependencies) {
	gdb, log, cfg := deps.Gorm, deps.Logger, deps.Config
	base := transport.NewBaseHandler(log)

	permissionService := permission.NewService(permissionPostgres.NewPermissionRepository(gdb), log)
	tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenDuration)
	authService := auth.NewService(authPostgres.NewRepository(gdb), tokens, cfg.Security.BCryptCost, log)

	deps.Fees = fee.NewService(feePostgres.NewFeeRepository(gdb), log)
	deps.Library = library.NewService(libraryPostgres.NewLibraryRepository(gdb), log)

	deps.Handlers = rest.Handlers{
		Auth:       auth.NewHandler(base, authService),
		RBAC:       auth.NewRBACAuthorization(log),
		Permission: permission.NewHandler(base, permissionService),
		Role: role.NewHandler(base, role.NewService(
			rolePostgres.NewRoleRepository(gdb), permissionService, deps.EventBus, log)),
		User: user.NewHandler(base, user.NewService(
			userPostgres.NewUserRepository(gdb), permissionService, cfg.Security.BCryptCost, log)),
		Student: student.NewHandler(base, student.NewService(studentPostgres.NewStudentRepository(gdb), log)),
		Teacher: teacher.NewHandler(base, teacher.NewService(teacherPostgres.NewTeacherRepository(gdb), log)),
		Class:   schoolclass.NewHandler(base, schoolclass.NewService(schoolclassPostgres.NewClassRepository(gdb), log)),
		Attendance: attendance.NewHandler(base, attendance.NewService(
			attendancePostgres.NewAttendanceRepository(gdb), log)),
		Fee:     fee.NewHandler(base, deps.Fees),
		Exam:    exam.NewHandler(base, exam.NewService(examPostgres.NewExamRepository(gdb), log)),
		Library: library.NewHandler(base, deps.Library),
		Transit: transit.NewHandler(base, transit.NewService(transitPostgres.NewRouteRepository(gdb), log)),
		Message: message.NewHandler(base, message.NewService(messagePostgres.NewMessageRepository(gdb), log)),
		Academic: academic.NewHandler(base, academic.NewService(
			academicPostgres.NewAcademicRepository(gdb), deps.EventBus, log)),
		Promotion: promotion.NewHandler(base, promotion.NewService(
			promotionPostgres.NewPromotionRepository(gdb), deps.EventBus, log)),
		Report: report.NewHandler(base, report.NewService(reportPostgres.NewReportRepository(deps.DB), log)),
		Audit:  audit.NewHandler(base, audit.NewService(auditPostgres.NewActivityRepository(gdb), log)),
	}
}

func newScheduler(deps *Dependencies, log *slog.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.New(log)
	for _, job := range scheduler.OverdueJobs(deps.Config.Scheduler, deps.Fees, deps.Library) {
		if err := s.Add(job); err != nil {
			return nil, err
		}
	}
	return s, nil
}
