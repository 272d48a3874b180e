package transit

import (
	"encoding/json"
	"time"

	transitDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/transit"
)

type Stop struct {
	Name  string `json:"name" validate:"required,notblank"`
	Time  string `json:"time"`
	Order int    `json:"order" validate:"gte=0"`
}

type Route struct {
	ID            int64     `json:"id"`
	RouteName     string    `json:"route_name"`
	RouteNumber   string    `json:"route_number"`
	VehicleNumber string    `json:"vehicle_number,omitempty"`
	DriverName    string    `json:"driver_name,omitempty"`
	DriverPhone   string    `json:"driver_phone,omitempty"`
	Capacity      int       `json:"capacity"`
	Fare          float64   `json:"fare"`
	Stops         []Stop    `json:"stops"`
	StudentIDs    []int64   `json:"student_ids"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromDataModel(r *transitDatamodel.Route, studentIDs []int64) *Route {
	stops := []Stop{}
	if len(r.Stops) > 0 {
		// rows written outside the API may carry malformed stops
		_ = json.Unmarshal(r.Stops, &stops)
	}
	if studentIDs == nil {
		studentIDs = []int64{}
	}
	return &Route{
		ID:            r.ID,
		RouteName:     r.RouteName,
		RouteNumber:   r.RouteNumber,
		VehicleNumber: r.VehicleNumber,
		DriverName:    r.DriverName,
		DriverPhone:   r.DriverPhone,
		Capacity:      r.Capacity,
		Fare:          r.Fare,
		Stops:         stops,
		StudentIDs:    studentIDs,
		CreatedAt:     r.CreatedAt,
	}
}
