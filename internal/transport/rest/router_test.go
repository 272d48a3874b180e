package rest_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/edumaster/internal/auth"
	authPostgres "github.com/frahmantamala/edumaster/internal/auth/postgres"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/core/testdb"
	"github.com/frahmantamala/edumaster/internal/student"
	studentPostgres "github.com/frahmantamala/edumaster/internal/student/postgres"
	"github.com/frahmantamala/edumaster/internal/transport"
	"github.com/frahmantamala/edumaster/internal/transport/middleware"
	"github.com/frahmantamala/edumaster/internal/transport/rest"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

var _ = Describe("RegisterAllRoutes", func() {
	var (
		router      *chi.Mux
		sqlDB       *sql.DB
		teacherRole userDatamodel.Role
		ownerRole   userDatamodel.Role
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err := testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err = db.DB()
		Expect(err).NotTo(HaveOccurred())

		studentsRead := userDatamodel.Permission{Name: "Students Read", Code: "students.read", Module: "students", Action: "read"}
		Expect(db.Create(&studentsRead).Error).To(Succeed())
		teacherRole = userDatamodel.Role{
			Name:        "teacher",
			DisplayName: "Teacher",
			IsActive:    true,
			Permissions: []userDatamodel.Permission{studentsRead},
		}
		Expect(db.Create(&teacherRole).Error).To(Succeed())
		all := userDatamodel.Permission{Name: "All", Code: "all", Module: "system", Action: "all"}
		Expect(db.Create(&all).Error).To(Succeed())
		ownerRole = userDatamodel.Role{
			Name:        "super_admin",
			DisplayName: "Super Admin",
			IsSystem:    true,
			IsActive:    true,
			Permissions: []userDatamodel.Permission{all},
		}
		Expect(db.Create(&ownerRole).Error).To(Succeed())

		base := transport.NewBaseHandler(slogger)
		tokens := auth.NewJWTTokenGenerator("router-secret-router-secret-router-secret", time.Hour)
		authService := auth.NewService(authPostgres.NewRepository(db), tokens, bcrypt.MinCost, slogger)
		studentService := student.NewService(studentPostgres.NewStudentRepository(db), slogger)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, sqlDB, rest.Handlers{
			Auth:    auth.NewHandler(base, authService),
			RBAC:    auth.NewRBACAuthorization(slogger),
			Student: student.NewHandler(base, studentService),
		}, rest.Options{AllowedOrigins: "*"})
	})

	do := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	register := func() string {
		rec := do(http.MethodPost, "/api/v1/auth/register", "", auth.RegisterRequest{
			Email:     "teacher@school.test",
			Password:  "secret123",
			RoleID:    teacherRole.ID,
			FirstName: "Tina",
			LastName:  "Teach",
		})
		Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
		var resp auth.AuthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Token).NotTo(BeEmpty())
		return resp.Token
	}

	It("answers ping and health without a token", func() {
		rec := do(http.MethodGet, "/api/v1/ping", "", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"status":"OK"`))

		rec = do(http.MethodGet, "/api/v1/health", "", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		var health rest.HealthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &health)).To(Succeed())
		Expect(health.Status).To(Equal(rest.HealthHealthy))
		Expect(health.Components).To(HaveKey("database"))
	})

	It("reports unhealthy once the database is gone", func() {
		Expect(sqlDB.Close()).To(Succeed())
		rec := do(http.MethodGet, "/api/v1/health", "", nil)
		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
	})

	It("tags every response with a trace id", func() {
		rec := do(http.MethodGet, "/api/v1/ping", "", nil)
		Expect(rec.Header().Get(middleware.TraceHeader)).NotTo(BeEmpty())
	})

	It("refuses open registration into a role that grants everything", func() {
		rec := do(http.MethodPost, "/api/v1/auth/register", "", auth.RegisterRequest{
			Email:     "intruder@school.test",
			Password:  "secret123",
			RoleID:    ownerRole.ID,
			FirstName: "Ivy",
			LastName:  "Intruder",
		})
		Expect(rec.Code).To(Equal(http.StatusForbidden), rec.Body.String())
		Expect(rec.Body.String()).NotTo(ContainSubstring("token"))
	})

	It("rejects protected routes without a token", func() {
		rec := do(http.MethodGet, "/api/v1/students", "", nil)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(rec.Body.String()).To(ContainSubstring("Please authenticate"))
	})

	It("rejects a forged token", func() {
		rec := do(http.MethodGet, "/api/v1/students", "not-a-jwt", nil)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("lets a granted permission through and names the missing one otherwise", func() {
		token := register()

		rec := do(http.MethodGet, "/api/v1/students", token, nil)
		Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
		Expect(rec.Body.String()).To(ContainSubstring(`"count":0`))

		rec = do(http.MethodPost, "/api/v1/students", token, map[string]string{"first_name": "Ann"})
		Expect(rec.Code).To(Equal(http.StatusForbidden))
		var denied auth.ForbiddenResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &denied)).To(Succeed())
		Expect(denied.Required).To(Equal("students.create"))
	})

	It("serves the caller's own profile", func() {
		token := register()
		rec := do(http.MethodGet, "/api/v1/auth/me", token, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("students.read"))
	})

	It("leaves routes of unwired modules unregistered", func() {
		token := register()
		rec := do(http.MethodGet, "/api/v1/fees", token, nil)
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("answers unknown paths with a JSON 404", func() {
		rec := do(http.MethodGet, "/nowhere", "", nil)
		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
		Expect(rec.Body.String()).To(MatchJSON(`{"error":"not found"}`))
	})

	It("answers CORS preflight requests", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/students", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(BeNumerically("<", http.StatusMultipleChoices))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).NotTo(BeEmpty())
		Expect(rec.Body.String()).NotTo(ContainSubstring("Please authenticate"))
	})
})
