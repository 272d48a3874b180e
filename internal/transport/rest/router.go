package rest

import (
	"database/sql"
	"net/http"

	"github.com/frahmantamala/edumaster/internal/academic"
	"github.com/frahmantamala/edumaster/internal/attendance"
	"github.com/frahmantamala/edumaster/internal/audit"
	"github.com/frahmantamala/edumaster/internal/auth"
	"github.com/frahmantamala/edumaster/internal/exam"
	"github.com/frahmantamala/edumaster/internal/fee"
	"github.com/frahmantamala/edumaster/internal/library"
	"github.com/frahmantamala/edumaster/internal/message"
	"github.com/frahmantamala/edumaster/internal/permission"
	"github.com/frahmantamala/edumaster/internal/promotion"
	"github.com/frahmantamala/edumaster/internal/report"
	"github.com/frahmantamala/edumaster/internal/role"
	"github.com/frahmantamala/edumaster/internal/schoolclass"
	"github.com/frahmantamala/edumaster/internal/student"
	"github.com/frahmantamala/edumaster/internal/teacher"
	"github.com/frahmantamala/edumaster/internal/transit"
	"github.com/frahmantamala/edumaster/internal/transport/middleware"
	"github.com/frahmantamala/edumaster/internal/transport/swagger"
	"github.com/frahmantamala/edumaster/internal/user"
	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups every module's HTTP handler. A nil handler leaves its
// routes unregistered.
type Handlers struct {
	Auth       *auth.Handler
	RBAC       *auth.RBACAuthorization
	User       *user.Handler
	Role       *role.Handler
	Permission *permission.Handler
	Student    *student.Handler
	Teacher    *teacher.Handler
	Class      *schoolclass.Handler
	Attendance *attendance.Handler
	Fee        *fee.Handler
	Exam       *exam.Handler
	Library    *library.Handler
	Transit    *transit.Handler
	Message    *message.Handler
	Academic   *academic.Handler
	Promotion  *promotion.Handler
	Report     *report.Handler
	Audit      *audit.Handler
}

type Options struct {
	AllowedOrigins string
	// Spec is served at /openapi.yml when set.
	Spec *swagger.Spec
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, opts Options) {
	healthHandler := NewHealthHandler(db)

	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.BodyLimit(middleware.MaxBodyBytes))
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)

	if opts.Spec != nil {
		router.Get(swagger.SpecRoute, opts.Spec.ServeSpec)
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.health)
		r.Get("/ping", healthHandler.ping)

		if h.Auth == nil {
			return
		}

		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/register", h.Auth.Register)
		if h.Role != nil {
			r.Get("/roles/active", h.Role.GetActiveRoles)
		}

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			allow := h.RBAC.Middleware

			pr.Get("/auth/me", h.Auth.Me)
			pr.Post("/auth/check-permission", h.Auth.CheckPermission)

			if h.Permission != nil {
				pr.Route("/permissions", func(sr chi.Router) {
					sr.With(allow("permissions.read")).Get("/", h.Permission.GetPermissions)
					sr.With(allow("permissions.read")).Get("/module/{module}", h.Permission.GetPermissionsByModule)
					sr.With(allow("permissions.create")).Post("/", h.Permission.CreatePermission)
					sr.With(allow("permissions.create")).Post("/bulk", h.Permission.BulkCreatePermissions)
					sr.With(allow("permissions.update")).Put("/{id}", h.Permission.UpdatePermission)
					sr.With(allow("permissions.delete")).Delete("/{id}", h.Permission.DeletePermission)
				})
			}

			if h.Role != nil {
				pr.Route("/roles", func(sr chi.Router) {
					sr.With(allow("roles.read")).Get("/", h.Role.GetRoles)
					sr.With(allow("roles.read")).Get("/{id}", h.Role.GetRole)
					sr.With(allow("roles.create")).Post("/", h.Role.CreateRole)
					sr.With(allow("roles.update")).Put("/{id}", h.Role.UpdateRole)
					sr.With(allow("roles.delete")).Delete("/{id}", h.Role.DeleteRole)
					sr.With(allow("roles.create")).Post("/{id}/duplicate", h.Role.DuplicateRole)
				})
			}

			if h.User != nil {
				pr.Route("/users", func(sr chi.Router) {
					sr.With(allow("users.read")).Get("/", h.User.GetUsers)
					sr.With(allow("users.read")).Get("/{id}", h.User.GetUser)
					sr.With(allow("users.create")).Post("/", h.User.CreateUser)
					sr.With(allow("users.update")).Put("/{id}", h.User.UpdateUser)
					sr.With(allow("users.delete")).Delete("/{id}", h.User.DeleteUser)
					sr.With(allow("users.update")).Post("/{id}/permissions", h.User.SetUserPermissions)
				})
			}

			if h.Student != nil {
				pr.Route("/students", func(sr chi.Router) {
					sr.With(allow("students.read")).Get("/", h.Student.GetStudents)
					sr.With(allow("students.read")).Get("/{id}", h.Student.GetStudent)
					sr.With(allow("students.create")).Post("/", h.Student.CreateStudent)
					sr.With(allow("students.update")).Put("/{id}", h.Student.UpdateStudent)
					sr.With(allow("students.delete")).Delete("/{id}", h.Student.DeleteStudent)

					if h.Academic != nil {
						sr.With(allow("students.read")).Get("/{studentId}/history", h.Academic.GetStudentHistory)
						sr.With(allow("students.read")).Get("/{studentId}/history/{sessionId}", h.Academic.GetStudentSessionHistory)
						sr.With(allow("students.update")).Post("/{studentId}/history", h.Academic.CreateStudentHistory)
					}
					if h.Report != nil {
						sr.With(allow("reports.read")).Get("/{id}/progression", h.Report.GetStudentProgression)
					}
				})
			}

			if h.Teacher != nil {
				pr.Route("/teachers", func(sr chi.Router) {
					sr.With(allow("teachers.read")).Get("/", h.Teacher.GetTeachers)
					sr.With(allow("teachers.read")).Get("/{id}", h.Teacher.GetTeacher)
					sr.With(allow("teachers.create")).Post("/", h.Teacher.CreateTeacher)
					sr.With(allow("teachers.update")).Put("/{id}", h.Teacher.UpdateTeacher)
					sr.With(allow("teachers.delete")).Delete("/{id}", h.Teacher.DeleteTeacher)
				})
			}

			if h.Class != nil {
				pr.Route("/classes", func(sr chi.Router) {
					sr.With(allow("classes.read")).Get("/", h.Class.GetClasses)
					sr.With(allow("classes.read")).Get("/{id}", h.Class.GetClass)
					sr.With(allow("classes.create")).Post("/", h.Class.CreateClass)
					sr.With(allow("classes.update")).Put("/{id}", h.Class.UpdateClass)
					sr.With(allow("classes.delete")).Delete("/{id}", h.Class.DeleteClass)
					sr.With(allow("classes.update")).Post("/{id}/students", h.Class.AddStudent)
					sr.With(allow("classes.update")).Delete("/{id}/students/{studentId}", h.Class.RemoveStudent)
				})
			}

			if h.Attendance != nil {
				pr.With(allow("attendance.read")).Get("/attendance", h.Attendance.GetAttendance)
				pr.With(allow("attendance.create")).Post("/attendance", h.Attendance.MarkAttendance)
			}

			if h.Fee != nil {
				pr.Route("/fees", func(sr chi.Router) {
					sr.With(allow("fees.read")).Get("/", h.Fee.GetFees)
					sr.With(allow("fees.create")).Post("/", h.Fee.CreateFee)
					sr.With(allow("fees.update")).Post("/{id}/pay", h.Fee.PayFee)
				})
			}

			if h.Exam != nil {
				pr.With(allow("exams.read")).Get("/exams", h.Exam.GetExams)
				pr.With(allow("exams.create")).Post("/exams", h.Exam.CreateExam)
				pr.With(allow("results.read")).Get("/results", h.Exam.GetResults)
				pr.With(allow("results.create")).Post("/results", h.Exam.CreateResult)
			}

			if h.Library != nil {
				pr.Route("/library", func(sr chi.Router) {
					sr.With(allow("library.read")).Get("/books", h.Library.GetBooks)
					sr.With(allow("library.create")).Post("/books", h.Library.CreateBook)
					sr.With(allow("library.create")).Post("/issue", h.Library.IssueBook)
					sr.With(allow("library.read")).Get("/issues", h.Library.GetIssues)
					sr.With(allow("library.update")).Post("/issues/{id}/return", h.Library.ReturnBook)
				})
			}

			if h.Transit != nil {
				pr.Route("/transport/routes", func(sr chi.Router) {
					sr.With(allow("transport.read")).Get("/", h.Transit.GetRoutes)
					sr.With(allow("transport.create")).Post("/", h.Transit.CreateRoute)
					sr.With(allow("transport.update")).Put("/{id}", h.Transit.UpdateRoute)
					sr.With(allow("transport.update")).Post("/{id}/students", h.Transit.AssignStudent)
				})
			}

			if h.Message != nil {
				pr.Route("/messages", func(sr chi.Router) {
					sr.With(allow("messages.read")).Get("/", h.Message.GetMessages)
					sr.With(allow("messages.create")).Post("/", h.Message.SendMessage)
					sr.With(allow("messages.read")).Put("/{id}/read", h.Message.MarkRead)
				})
			}

			if h.Academic != nil {
				pr.Route("/sessions", func(sr chi.Router) {
					sr.With(allow("sessions.read")).Get("/", h.Academic.GetSessions)
					sr.With(allow("sessions.read")).Get("/current", h.Academic.GetCurrentSession)
					sr.With(allow("sessions.read")).Get("/{id}", h.Academic.GetSession)
					sr.With(allow("sessions.create")).Post("/", h.Academic.CreateSession)
					sr.With(allow("sessions.update")).Put("/{id}", h.Academic.UpdateSession)
					sr.With(allow("sessions.update")).Post("/{id}/set-current", h.Academic.SetCurrentSession)
					sr.With(allow("sessions.update")).Post("/{id}/close", h.Academic.CloseSession)
					if h.Report != nil {
						sr.With(allow("reports.read")).Get("/{id}/statistics", h.Report.GetSessionStatistics)
					}
				})
			}

			if h.Promotion != nil {
				pr.Route("/promotions", func(sr chi.Router) {
					sr.With(allow("promotions.read")).Get("/", h.Promotion.GetPromotions)
					sr.With(allow("promotions.create")).Post("/", h.Promotion.CreatePromotion)
					sr.With(allow("promotions.create")).Post("/bulk", h.Promotion.BulkPromote)
					sr.With(allow("promotions.create")).Post("/single", h.Promotion.PromoteSingle)
					sr.With(allow("promotions.create")).Post("/graduate", h.Promotion.Graduate)
				})
				pr.Route("/transfers", func(sr chi.Router) {
					sr.With(allow("transfers.read")).Get("/", h.Promotion.GetTransfers)
					sr.With(allow("transfers.create")).Post("/", h.Promotion.CreateTransfer)
					sr.With(allow("transfers.update")).Post("/{id}/approve", h.Promotion.ApproveTransfer)
					sr.With(allow("transfers.read")).Get("/{id}/certificate", h.Promotion.GetCertificate)
				})
			}

			if h.Report != nil {
				pr.Get("/dashboard/stats", h.Report.GetDashboardStats)
			}
			if h.Audit != nil {
				pr.With(allow("reports.read")).Get("/activity", h.Audit.GetActivity)
			}
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	})
}
