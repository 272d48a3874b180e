package transit

import (
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type CreateRequest struct {
	RouteName     string  `json:"route_name" validate:"required,notblank"`
	RouteNumber   string  `json:"route_number" validate:"required,notblank"`
	VehicleNumber string  `json:"vehicle_number"`
	DriverName    string  `json:"driver_name"`
	DriverPhone   string  `json:"driver_phone"`
	Capacity      int     `json:"capacity" validate:"gte=0"`
	Fare          float64 `json:"fare" validate:"gte=0"`
	Stops         []Stop  `json:"stops" validate:"dive"`
}

func (r CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type UpdateRequest struct {
	RouteName     *string  `json:"route_name" validate:"omitempty,notblank"`
	RouteNumber   *string  `json:"route_number" validate:"omitempty,notblank"`
	VehicleNumber *string  `json:"vehicle_number"`
	DriverName    *string  `json:"driver_name"`
	DriverPhone   *string  `json:"driver_phone"`
	Capacity      *int     `json:"capacity" validate:"omitempty,gte=0"`
	Fare          *float64 `json:"fare" validate:"omitempty,gte=0"`
	Stops         []Stop   `json:"stops" validate:"omitempty,dive"`
}

func (r UpdateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type AssignRequest struct {
	StudentID int64  `json:"student_id" validate:"required"`
	StopName  string `json:"stop_name"`
}

func (r AssignRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type RoutesResponse struct {
	Routes []*Route `json:"routes"`
	Count  int      `json:"count"`
}
