package transit_test

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
	"github.com/frahmantamala/edumaster/internal/transit"
	transitPostgres "github.com/frahmantamala/edumaster/internal/transit/postgres"
	"github.com/frahmantamala/edumaster/internal/transport"
)

func TestTransit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transit Suite")
}

var _ = Describe("Transport Route Handler Integration", func() {
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

		service := transit.NewService(transitPostgres.NewRouteRepository(db), slogger)
		handler := transit.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/transport/routes", handler.GetRoutes)
		router.Post("/transport/routes", handler.CreateRoute)
		router.Put("/transport/routes/{id}", handler.UpdateRoute)
		router.Post("/transport/routes/{id}/students", handler.AssignStudent)

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

	decode := func(rec *httptest.ResponseRecorder) *transit.Route {
		var route transit.Route
		Expect(json.Unmarshal(rec.Body.Bytes(), &route)).To(Succeed())
		return &route
	}

	create := func(number string) *transit.Route {
		rec := do(http.MethodPost, "/transport/routes", map[string]interface{}{
			"route_name":   "North loop",
			"route_number": number,
			"capacity":     40,
			"fare":         300,
			"stops": []map[string]interface{}{
				{"name": "Depot", "time": "07:50", "order": 2},
				{"name": "Market", "time": "07:30", "order": 1},
			},
		})
		Expect(rec.Code).To(Equal(http.StatusCreated))
		return decode(rec)
	}

	routePath := func(id int64) string { return "/transport/routes/" + strconv.FormatInt(id, 10) }

	It("stores stops in order", func() {
		route := create("R1")
		Expect(route.Stops).To(HaveLen(2))
		Expect(route.Stops[0].Name).To(Equal("Market"))
		Expect(route.Stops[1].Name).To(Equal("Depot"))
		Expect(route.StudentIDs).To(BeEmpty())
	})

	It("rejects duplicate route numbers and blank stop names", func() {
		create("R1")
		Expect(do(http.MethodPost, "/transport/routes", map[string]interface{}{"route_name": "Other", "route_number": "R1"}).Code).
			To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/transport/routes", map[string]interface{}{
			"route_name": "South", "route_number": "R2", "stops": []map[string]interface{}{{"name": " "}},
		}).Code).To(Equal(http.StatusBadRequest))
	})

	It("updates only the given fields", func() {
		route := create("R1")
		rec := do(http.MethodPut, routePath(route.ID), map[string]interface{}{"driver_name": "Vikram", "fare": 350})
		Expect(rec.Code).To(Equal(http.StatusOK))
		updated := decode(rec)
		Expect(updated.DriverName).To(Equal("Vikram"))
		Expect(updated.Fare).To(Equal(350.0))
		Expect(updated.RouteName).To(Equal("North loop"))
		Expect(updated.Stops).To(HaveLen(2))

		Expect(do(http.MethodPut, routePath(999), map[string]interface{}{"fare": 1}).Code).To(Equal(http.StatusNotFound))
	})

	It("assigns students once per route", func() {
		route := create("R1")
		path := routePath(route.ID) + "/students"

		Expect(do(http.MethodPost, path, map[string]interface{}{"student_id": studentID, "stop_name": "Market"}).Code).To(Equal(http.StatusOK))
		rec := do(http.MethodPost, path, map[string]interface{}{"student_id": studentID, "stop_name": "Depot"})
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(decode(rec).StudentIDs).To(Equal([]int64{studentID}))

		Expect(do(http.MethodPost, path, map[string]interface{}{"student_id": 999}).Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodPost, routePath(999)+"/students", map[string]interface{}{"student_id": studentID}).Code).To(Equal(http.StatusNotFound))

		listRec := do(http.MethodGet, "/transport/routes", nil)
		Expect(listRec.Code).To(Equal(http.StatusOK))
		var resp transit.RoutesResponse
		Expect(json.Unmarshal(listRec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Count).To(Equal(1))
		Expect(resp.Routes[0].StudentIDs).To(ConsistOf(studentID))
	})
})
