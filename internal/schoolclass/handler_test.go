package schoolclass_test

import (
	"bytes"
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

	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/core/testdb"
	"github.com/frahmantamala/edumaster/internal/schoolclass"
	classPostgres "github.com/frahmantamala/edumaster/internal/schoolclass/postgres"
	"github.com/frahmantamala/edumaster/internal/transport"
)

func TestSchoolClass(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SchoolClass Suite")
}

var _ = Describe("Class Handler Integration", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		service := schoolclass.NewService(classPostgres.NewClassRepository(db), slogger)
		handler := schoolclass.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/classes", handler.GetClasses)
		router.Get("/classes/{id}", handler.GetClass)
		router.Post("/classes", handler.CreateClass)
		router.Put("/classes/{id}", handler.UpdateClass)
		router.Delete("/classes/{id}", handler.DeleteClass)
		router.Post("/classes/{id}/students", handler.AddStudent)
		router.Delete("/classes/{id}/students/{studentId}", handler.RemoveStudent)
	})

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
		return rec
	}

	decode := func(rec *httptest.ResponseRecorder) *schoolclass.Class {
		var c schoolclass.Class
		Expect(json.Unmarshal(rec.Body.Bytes(), &c)).To(Succeed())
		return &c
	}

	newStudent := func(code string) int64 {
		s := studentDatamodel.Student{StudentCode: code, FirstName: "S", LastName: code, Status: "active"}
		Expect(db.Create(&s).Error).To(Succeed())
		return s.ID
	}

	classPath := func(id int64) string { return "/classes/" + strconv.FormatInt(id, 10) }

	It("creates a class with an empty roster", func() {
		rec := do(http.MethodPost, "/classes", map[string]interface{}{"name": "Grade 3", "grade": 3, "section": "B", "capacity": 30})
		Expect(rec.Code).To(Equal(http.StatusCreated))
		c := decode(rec)
		Expect(c.IsActive).To(BeTrue())
		Expect(c.Students).To(BeEmpty())
	})

	It("manages the roster", func() {
		c := decode(do(http.MethodPost, "/classes", map[string]interface{}{"name": "Grade 3", "grade": 3}))
		a := newStudent("STU00001")
		b := newStudent("STU00002")

		Expect(do(http.MethodPost, classPath(c.ID)+"/students", map[string]interface{}{"student_id": a}).Code).To(Equal(http.StatusOK))
		rec := do(http.MethodPost, classPath(c.ID)+"/students", map[string]interface{}{"student_id": b})
		Expect(decode(rec).Students).To(Equal([]int64{a, b}))

		rec = do(http.MethodPost, classPath(c.ID)+"/students", map[string]interface{}{"student_id": a})
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(decode(rec).Students).To(HaveLen(2))

		rec = do(http.MethodDelete, classPath(c.ID)+"/students/"+strconv.FormatInt(a, 10), nil)
		Expect(decode(rec).Students).To(Equal([]int64{b}))
	})

	It("refuses students beyond capacity and unknown students", func() {
		c := decode(do(http.MethodPost, "/classes", map[string]interface{}{"name": "Tiny", "grade": 1, "capacity": 1}))
		Expect(do(http.MethodPost, classPath(c.ID)+"/students", map[string]interface{}{"student_id": newStudent("STU00001")}).Code).To(Equal(http.StatusOK))

		rec := do(http.MethodPost, classPath(c.ID)+"/students", map[string]interface{}{"student_id": newStudent("STU00002")})
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("Class is full"))

		Expect(do(http.MethodPost, classPath(c.ID)+"/students", map[string]interface{}{"student_id": 999}).Code).To(Equal(http.StatusNotFound))
	})

	It("filters by session", func() {
		sessionID := int64(7)
		do(http.MethodPost, "/classes", map[string]interface{}{"name": "A", "grade": 1, "session_id": sessionID})
		do(http.MethodPost, "/classes", map[string]interface{}{"name": "B", "grade": 2})

		var resp schoolclass.ClassesResponse
		Expect(json.Unmarshal(do(http.MethodGet, "/classes?session=7", nil).Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Count).To(Equal(1))
		Expect(resp.Classes[0].Name).To(Equal("A"))
	})

	It("updates and deletes", func() {
		c := decode(do(http.MethodPost, "/classes", map[string]interface{}{"name": "Grade 3", "grade": 3}))
		rec := do(http.MethodPut, classPath(c.ID), map[string]interface{}{"room": "R-12", "is_active": false})
		Expect(rec.Code).To(Equal(http.StatusOK))
		updated := decode(rec)
		Expect(updated.Room).To(Equal("R-12"))
		Expect(updated.IsActive).To(BeFalse())

		Expect(do(http.MethodDelete, classPath(c.ID), nil).Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, classPath(c.ID), nil).Code).To(Equal(http.StatusNotFound))
	})
})
