package academic_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/edumaster/internal/academic"
	academicPostgres "github.com/frahmantamala/edumaster/internal/academic/postgres"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/core/events"
	"github.com/frahmantamala/edumaster/internal/core/testdb"
	"github.com/frahmantamala/edumaster/internal/transport"
)

func TestAcademic(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Academic Suite")
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

var _ = Describe("Academic Handler Integration", func() {
	var (
		db        *gorm.DB
		router    *chi.Mux
		publisher *recordingPublisher
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		publisher = &recordingPublisher{}
		service := academic.NewService(academicPostgres.NewAcademicRepository(db), publisher, slogger)
		handler := academic.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/sessions", handler.GetSessions)
		router.Post("/sessions", handler.CreateSession)
		router.Get("/sessions/current", handler.GetCurrentSession)
		router.Get("/sessions/{id}", handler.GetSession)
		router.Put("/sessions/{id}", handler.UpdateSession)
		router.Post("/sessions/{id}/set-current", handler.SetCurrentSession)
		router.Post("/sessions/{id}/close", handler.CloseSession)
		router.Get("/students/{studentId}/history", handler.GetStudentHistory)
		router.Post("/students/{studentId}/history", handler.CreateStudentHistory)
		router.Get("/students/{studentId}/history/{sessionId}", handler.GetStudentSessionHistory)
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

	decodeSession := func(rec *httptest.ResponseRecorder) *academic.Session {
		var s academic.Session
		Expect(json.Unmarshal(rec.Body.Bytes(), &s)).To(Succeed())
		return &s
	}

	createSession := func(name, start, end string) *academic.Session {
		rec := do(http.MethodPost, "/sessions", map[string]interface{}{"session_name": name, "start_date": start, "end_date": end})
		Expect(rec.Code).To(Equal(http.StatusCreated))
		return decodeSession(rec)
	}

	sessionPath := func(id int64) string { return "/sessions/" + strconv.FormatInt(id, 10) }

	currentIDs := func() []int64 {
		var ids []int64
		Expect(db.Model(&academicDatamodel.Session{}).Where("is_current = ?", true).Pluck("id", &ids).Error).To(Succeed())
		return ids
	}

	Describe("sessions", func() {
		It("creates upcoming sessions and lists newest first", func() {
			first := createSession("2024-2025", "2024-04-01", "2025-03-31")
			Expect(first.Status).To(Equal(academic.SessionUpcoming))
			Expect(first.IsActive).To(BeFalse())
			createSession("2025-2026", "2025-04-01", "2026-03-31")

			var resp academic.SessionsResponse
			Expect(json.Unmarshal(do(http.MethodGet, "/sessions", nil).Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Count).To(Equal(2))
			Expect(resp.Sessions[0].SessionName).To(Equal("2025-2026"))
		})

		It("rejects an end date before the start date", func() {
			rec := do(http.MethodPost, "/sessions", map[string]interface{}{"session_name": "bad", "start_date": "2025-04-01", "end_date": "2025-01-01"})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a duplicate name", func() {
			createSession("2024-2025", "2024-04-01", "2025-03-31")
			rec := do(http.MethodPost, "/sessions", map[string]interface{}{"session_name": "2024-2025", "start_date": "2024-04-01", "end_date": "2025-03-31"})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("reports a missing current session as not found", func() {
			Expect(do(http.MethodGet, "/sessions/current", nil).Code).To(Equal(http.StatusNotFound))
		})

		It("keeps exactly one current session", func() {
			a := createSession("2024-2025", "2024-04-01", "2025-03-31")
			b := createSession("2025-2026", "2025-04-01", "2026-03-31")

			Expect(do(http.MethodPost, sessionPath(a.ID)+"/set-current", nil).Code).To(Equal(http.StatusOK))
			rec := do(http.MethodPost, sessionPath(b.ID)+"/set-current", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			s := decodeSession(rec)
			Expect(s.IsCurrent).To(BeTrue())
			Expect(s.Status).To(Equal(academic.SessionActive))

			Expect(currentIDs()).To(Equal([]int64{b.ID}))
			Expect(decodeSession(do(http.MethodGet, "/sessions/current", nil)).ID).To(Equal(b.ID))
			Expect(publisher.events).To(HaveLen(2))
			Expect(publisher.events[1].EventType()).To(Equal(events.EventTypeSessionCurrentChanged))
		})

		It("leaves the current session alone when the target is unknown", func() {
			a := createSession("2024-2025", "2024-04-01", "2025-03-31")
			do(http.MethodPost, sessionPath(a.ID)+"/set-current", nil)

			Expect(do(http.MethodPost, sessionPath(999)+"/set-current", nil).Code).To(Equal(http.StatusNotFound))
			Expect(currentIDs()).To(Equal([]int64{a.ID}))
		})

		It("closes a session", func() {
			a := createSession("2024-2025", "2024-04-01", "2025-03-31")
			do(http.MethodPost, sessionPath(a.ID)+"/set-current", nil)

			s := decodeSession(do(http.MethodPost, sessionPath(a.ID)+"/close", nil))
			Expect(s.Status).To(Equal(academic.SessionCompleted))
			Expect(s.IsCurrent).To(BeFalse())
			Expect(s.IsActive).To(BeFalse())
			Expect(currentIDs()).To(BeEmpty())
		})

		It("updates fields", func() {
			a := createSession("2024-2025", "2024-04-01", "2025-03-31")
			rec := do(http.MethodPut, sessionPath(a.ID), map[string]interface{}{"description": "main", "end_date": "2025-04-15"})
			Expect(rec.Code).To(Equal(http.StatusOK))
			s := decodeSession(rec)
			Expect(s.Description).To(Equal("main"))
			Expect(s.EndDate.Format("2006-01-02")).To(Equal("2025-04-15"))

			rec = do(http.MethodPut, sessionPath(a.ID), map[string]interface{}{"end_date": "2024-01-01"})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("student history", func() {
		var studentID int64

		BeforeEach(func() {
			s := studentDatamodel.Student{StudentCode: "STU00001", FirstName: "Asha", LastName: "Rao", Status: "active"}
			Expect(db.Create(&s).Error).To(Succeed())
			studentID = s.ID
		})

		historyPath := func() string { return "/students/" + strconv.FormatInt(studentID, 10) + "/history" }

		It("records one active history per session", func() {
			sess := createSession("2024-2025", "2024-04-01", "2025-03-31")
			body := map[string]interface{}{
				"session_id":  sess.ID,
				"section":     "A",
				"attendance":  map[string]interface{}{"total_days": 200, "present_days": 180, "percentage": 90},
				"performance": map[string]interface{}{"percentage": 72.5, "grade": "B+"},
			}
			rec := do(http.MethodPost, historyPath(), body)
			Expect(rec.Code).To(Equal(http.StatusCreated))
			var h academic.History
			Expect(json.Unmarshal(rec.Body.Bytes(), &h)).To(Succeed())
			Expect(h.SessionStatus).To(Equal(academic.HistoryActive))
			Expect(h.Attendance.Percentage).To(Equal(90.0))

			Expect(do(http.MethodPost, historyPath(), body).Code).To(Equal(http.StatusBadRequest))

			var resp academic.HistoryResponse
			Expect(json.Unmarshal(do(http.MethodGet, historyPath(), nil).Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Count).To(Equal(1))

			rec = do(http.MethodGet, historyPath()+"/"+strconv.FormatInt(sess.ID, 10), nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("validates percentages", func() {
			sess := createSession("2024-2025", "2024-04-01", "2025-03-31")
			rec := do(http.MethodPost, historyPath(), map[string]interface{}{
				"session_id": sess.ID,
				"attendance": map[string]interface{}{"percentage": 120},
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns not found for unknown students and sessions", func() {
			Expect(do(http.MethodGet, "/students/999/history", nil).Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodPost, historyPath(), map[string]interface{}{"session_id": 42}).Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodGet, historyPath()+"/42", nil).Code).To(Equal(http.StatusNotFound))
		})
	})
})
