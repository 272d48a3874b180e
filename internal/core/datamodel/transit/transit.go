package transit

import (
	"time"

	"gorm.io/datatypes"
)

type Route struct {
	ID            int64          `gorm:"primaryKey"`
	RouteName     string         `gorm:"column:route_name;not null"`
	RouteNumber   string         `gorm:"column:route_number;uniqueIndex;not null"`
	VehicleNumber string         `gorm:"column:vehicle_number"`
	DriverName    string         `gorm:"column:driver_name"`
	DriverPhone   string         `gorm:"column:driver_phone"`
	Capacity      int            `gorm:"column:capacity"`
	Fare          float64        `gorm:"column:fare"`
	Stops         datatypes.JSON `gorm:"column:stops"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Route) TableName() string { return "transport_routes" }

type RouteStudent struct {
	RouteID   int64     `gorm:"column:route_id;primaryKey"`
	StudentID int64     `gorm:"column:student_id;primaryKey"`
	StopName  string    `gorm:"column:stop_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (RouteStudent) TableName() string { return "transport_route_students" }
