package attendance_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/attendance"
	attendancePostgres "github.com/frahmantamala/edumaster/internal/attendance/postgres"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/core/testdb"
	"github.com/frahmantamala/edumaster/internal/transport"
)

func TestAttendance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Suite")
}

var _ = Describe("Attendance Handler Integration", func() {
	var (
		db        *gorm.DB
		router    *chi.Mux
		studentID int64
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		service := attendance.NewService(attendancePostgres.NewAttendanceRepository(db), slogger)
		handler := attendance.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUserID(r.Context(), 5)))
			})
		})
		router.Post("/attendance", handler.MarkAttendance)
		router.Get("/attendance", handler.GetAttendance)

		s := studentDatamodel.Student{StudentCode: "STU00001", FirstName: "Asha", LastName: "Rao", Status: "active"}
		Expect(db.Create(&s).Error).To(Succeed())
		studentID = s.ID
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

	mark := func(date, status string) *httptest.ResponseRecorder {
		return do(http.MethodPost, "/attendance", map[string]interface{}{"student_id": studentID, "date": date, "status": status})
	}

	list := func(query string) attendance.AttendanceResponse {
		rec := do(http.MethodGet, "/attendance"+query, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		var resp attendance.AttendanceResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	It("stamps the caller as marker", func() {
		rec := mark("2024-09-02", attendance.StatusPresent)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var r attendance.Record
		Expect(json.Unmarshal(rec.Body.Bytes(), &r)).To(Succeed())
		Expect(*r.MarkedBy).To(Equal(int64(5)))
		Expect(r.Date.Format("2006-01-02")).To(Equal("2024-09-02"))
	})

	It("validates status, date and student", func() {
		Expect(mark("2024-09-02", "sleeping").Code).To(Equal(http.StatusBadRequest))
		Expect(mark("2999-01-01", attendance.StatusPresent).Code).To(Equal(http.StatusBadRequest))
		rec := do(http.MethodPost, "/attendance", map[string]interface{}{"student_id": 999, "date": "2024-09-02", "status": "present"})
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("lists newest first and filters by date range", func() {
		mark("2024-09-02", attendance.StatusPresent)
		mark("2024-09-03", attendance.StatusLate)
		mark("2024-09-10", attendance.StatusAbsent)

		all := list("")
		Expect(all.Count).To(Equal(3))
		Expect(all.Attendance[0].Status).To(Equal(attendance.StatusAbsent))

		ranged := list("?startDate=2024-09-01&endDate=2024-09-05")
		Expect(ranged.Count).To(Equal(2))
		Expect(ranged.Attendance[0].Status).To(Equal(attendance.StatusLate))

		Expect(list("?startDate=2024-09-05").Count).To(Equal(3))
		Expect(list("?student=999").Count).To(Equal(0))
	})

	It("rejects an inverted range", func() {
		Expect(do(http.MethodGet, "/attendance?startDate=2024-09-05&endDate=2024-09-01", nil).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodGet, "/attendance?startDate=yesterday&endDate=2024-09-01", nil).Code).To(Equal(http.StatusBadRequest))
	})
})
