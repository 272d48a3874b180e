package role_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/edumaster/internal"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/core/events"
	"github.com/frahmantamala/edumaster/internal/core/testdb"
	"github.com/frahmantamala/edumaster/internal/permission"
	permissionPostgres "github.com/frahmantamala/edumaster/internal/permission/postgres"
	"github.com/frahmantamala/edumaster/internal/role"
	rolePostgres "github.com/frahmantamala/edumaster/internal/role/postgres"
	"github.com/frahmantamala/edumaster/internal/transport"
)

func TestRole(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Suite")
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

var _ = Describe("Role Handler Integration", func() {
	var (
		db        *gorm.DB
		router    *chi.Mux
		publisher *recordingPublisher
		readPerm  userDatamodel.Permission
		writePerm userDatamodel.Permission
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		readPerm = userDatamodel.Permission{Name: "Students Read", Code: "students.read", Module: "students", Action: "read"}
		writePerm = userDatamodel.Permission{Name: "Students Update", Code: "students.update", Module: "students", Action: "update"}
		Expect(db.Create(&readPerm).Error).To(Succeed())
		Expect(db.Create(&writePerm).Error).To(Succeed())

		publisher = &recordingPublisher{}
		permService := permission.NewService(permissionPostgres.NewPermissionRepository(db), slogger)
		service := role.NewService(rolePostgres.NewRoleRepository(db), permService, publisher, slogger)
		handler := role.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/roles", handler.GetRoles)
		router.Get("/roles/active", handler.GetActiveRoles)
		router.Get("/roles/{id}", handler.GetRole)
		router.Post("/roles", handler.CreateRole)
		router.Put("/roles/{id}", handler.UpdateRole)
		router.Delete("/roles/{id}", handler.DeleteRole)
		router.Post("/roles/{id}/duplicate", handler.DuplicateRole)
	})

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req = req.WithContext(internal.ContextWithUserID(req.Context(), 1))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	errorOf := func(w *httptest.ResponseRecorder) string {
		var resp internal.Response
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp.Error
	}

	createRole := func(name string, system bool, priority int) *userDatamodel.Role {
		rl := &userDatamodel.Role{Name: name, DisplayName: name, IsSystem: system, IsActive: true, Priority: priority,
			Permissions: []userDatamodel.Permission{readPerm}}
		Expect(db.Create(rl).Error).To(Succeed())
		return rl
	}

	It("creates a role with permissions and records the creator", func() {
		w := do(http.MethodPost, "/roles", map[string]interface{}{
			"name": "counsellor", "display_name": "Counsellor", "permissions": []int64{readPerm.ID, writePerm.ID},
		})
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created role.Role
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Permissions).To(HaveLen(2))
		Expect(created.IsSystem).To(BeFalse())
		Expect(*created.CreatedBy).To(Equal(int64(1)))
		Expect(publisher.events).To(HaveLen(1))
	})

	It("rejects unknown permission ids", func() {
		w := do(http.MethodPost, "/roles", map[string]interface{}{
			"name": "counsellor", "display_name": "Counsellor", "permissions": []int64{999},
		})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects duplicate names with 400", func() {
		createRole("clerk", false, 0)
		w := do(http.MethodPost, "/roles", map[string]interface{}{"name": "clerk", "display_name": "Clerk"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 for unknown roles", func() {
		w := do(http.MethodGet, "/roles/77", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("lists active roles by priority then name", func() {
		createRole("zeta", false, 1)
		createRole("alpha", false, 2)
		createRole("beta", false, 1)
		inactive := createRole("hidden", false, 0)
		Expect(db.Model(inactive).Update("is_active", false).Error).To(Succeed())

		w := do(http.MethodGet, "/roles/active", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp role.ActiveRolesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		names := []string{}
		for _, r := range resp.Roles {
			names = append(names, r.Name)
		}
		Expect(names).To(Equal([]string{"beta", "zeta", "alpha"}))
	})

	Describe("system roles", func() {
		var system *userDatamodel.Role

		BeforeEach(func() {
			system = createRole("admin", true, 1)
		})

		It("refuses updates without the explicit flag", func() {
			w := do(http.MethodPut, "/roles/"+itoa(system.ID), map[string]interface{}{"display_name": "Boss"})
			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(errorOf(w)).To(Equal("Cannot modify system role without explicit permission"))
		})

		It("allows updates with the explicit flag but keeps the system flag", func() {
			w := do(http.MethodPut, "/roles/"+itoa(system.ID), map[string]interface{}{
				"display_name": "Boss", "allow_system_update": true, "permissions": []int64{writePerm.ID},
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			var stored userDatamodel.Role
			Expect(db.Preload("Permissions").First(&stored, system.ID).Error).To(Succeed())
			Expect(stored.DisplayName).To(Equal("Boss"))
			Expect(stored.IsSystem).To(BeTrue())
			Expect(stored.Permissions).To(HaveLen(1))
			Expect(stored.Permissions[0].Code).To(Equal("students.update"))
		})

		It("can never be deleted", func() {
			w := do(http.MethodDelete, "/roles/"+itoa(system.ID), nil)
			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(errorOf(w)).To(Equal("Cannot delete system role"))
		})
	})

	Describe("delete", func() {
		It("is rejected while users hold the role", func() {
			rl := createRole("clerk", false, 0)
			for _, email := range []string{"a@x.io", "b@x.io"} {
				Expect(db.Create(&userDatamodel.User{Email: email, PasswordHash: "x", RoleID: rl.ID, IsActive: true}).Error).To(Succeed())
			}

			w := do(http.MethodDelete, "/roles/"+itoa(rl.ID), nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(errorOf(w)).To(Equal("Cannot delete role. 2 user(s) still have this role."))

			var count int64
			db.Model(&userDatamodel.Role{}).Where("id = ?", rl.ID).Count(&count)
			Expect(count).To(Equal(int64(1)))
		})

		It("removes an unused role and its grants", func() {
			rl := createRole("clerk", false, 0)
			w := do(http.MethodDelete, "/roles/"+itoa(rl.ID), nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var links int64
			db.Table("role_permissions").Where("role_id = ?", rl.ID).Count(&links)
			Expect(links).To(BeZero())
		})
	})

	It("duplicates a role as a non-system copy", func() {
		src := createRole("admin", true, 3)
		w := do(http.MethodPost, "/roles/"+itoa(src.ID)+"/duplicate", nil)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var copyRole role.Role
		Expect(json.NewDecoder(w.Body).Decode(&copyRole)).To(Succeed())
		Expect(copyRole.Name).To(Equal("admin_copy"))
		Expect(copyRole.DisplayName).To(Equal("admin (Copy)"))
		Expect(copyRole.IsSystem).To(BeFalse())
		Expect(copyRole.Priority).To(Equal(3))
		Expect(copyRole.PermissionCodes()).To(ConsistOf("students.read"))
	})
})

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
