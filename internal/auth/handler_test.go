package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/edumaster/internal/transport"
)

var _ = ginkgo.Describe("Auth middleware and RBAC", func() {
	var (
		router *chi.Mux
		tokens *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		tokens = NewJWTTokenGenerator("test-secret-test-secret-test-secret", 0)
		svc := NewService(newMockUserRepository(), tokens, bcrypt.MinCost, log)
		h := NewHandler(transport.NewBaseHandler(log), svc)
		rbac := NewRBACAuthorization(log)

		ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }

		router = chi.NewRouter()
		router.Route("/api", func(r chi.Router) {
			r.Use(h.AuthMiddleware)
			r.Get("/students", rbac.Check(ok, "students.read"))
			r.Get("/fees", rbac.Check(ok, "fees.read"))
			r.Delete("/roles", rbac.Check(ok, "roles.delete"))
			r.Get("/me", h.Me)
		})
	})

	do := func(method, path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	ginkgo.It("returns 401 without a token", func() {
		rec := do(http.MethodGet, "/api/students", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("Please authenticate"))
	})

	ginkgo.It("returns 401 for a garbage token", func() {
		rec := do(http.MethodGet, "/api/students", "not-a-token")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
	})

	ginkgo.It("allows role and additional grants", func() {
		token, _ := tokens.GenerateToken(2, 2, "teacher")
		gomega.Expect(do(http.MethodGet, "/api/students", token).Code).To(gomega.Equal(http.StatusNoContent))
		gomega.Expect(do(http.MethodGet, "/api/fees", token).Code).To(gomega.Equal(http.StatusNoContent))
	})

	ginkgo.It("returns 403 naming the missing permission", func() {
		token, _ := tokens.GenerateToken(2, 2, "teacher")
		rec := do(http.MethodDelete, "/api/roles", token)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))

		var body ForbiddenResponse
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
		gomega.Expect(body.Error).To(gomega.Equal("Access denied. Insufficient permissions."))
		gomega.Expect(body.Required).To(gomega.Equal("roles.delete"))
	})

	ginkgo.It("lets super admins through", func() {
		token, _ := tokens.GenerateToken(1, 1, "super_admin")
		gomega.Expect(do(http.MethodDelete, "/api/roles", token).Code).To(gomega.Equal(http.StatusNoContent))
	})

	ginkgo.It("reports effective permissions on me", func() {
		token, _ := tokens.GenerateToken(2, 2, "teacher")
		rec := do(http.MethodGet, "/api/me", token)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

		var body MeResponse
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
		gomega.Expect(body.EffectivePermissions).To(gomega.ConsistOf("students.read", "attendance.create", "fees.read"))
	})
})
