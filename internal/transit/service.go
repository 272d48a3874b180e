package transit

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/frahmantamala/edumaster/internal"
	transitDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/transit"
	"gorm.io/datatypes"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*transitDatamodel.Route, error)
	GetByID(ctx context.Context, id int64) (*transitDatamodel.Route, error)
	Create(ctx context.Context, r *transitDatamodel.Route) error
	Update(ctx context.Context, r *transitDatamodel.Route) error
	StudentExists(ctx context.Context, id int64) (bool, error)
	AssignStudent(ctx context.Context, rs *transitDatamodel.RouteStudent) error
	// StudentIDs returns the riders of each route keyed by route id.
	StudentIDs(ctx context.Context, routeIDs []int64) (map[int64][]int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Route, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list routes", "error", err)
		return nil, internal.NewInternalError("failed to list routes", err)
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	riders, err := s.repo.StudentIDs(ctx, ids)
	if err != nil {
		return nil, internal.NewInternalError("failed to list route students", err)
	}

	out := make([]*Route, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row, riders[row.ID]))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Route, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	stops, err := encodeStops(req.Stops)
	if err != nil {
		return nil, internal.NewInternalError("failed to encode stops", err)
	}
	row := &transitDatamodel.Route{
		RouteName:     strings.TrimSpace(req.RouteName),
		RouteNumber:   strings.TrimSpace(req.RouteNumber),
		VehicleNumber: req.VehicleNumber,
		DriverName:    req.DriverName,
		DriverPhone:   req.DriverPhone,
		Capacity:      req.Capacity,
		Fare:          req.Fare,
		Stops:         stops,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Route number already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to create route", "route_number", row.RouteNumber, "error", err)
		return nil, internal.NewInternalError("failed to create route", err)
	}
	return FromDataModel(row, nil), nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Route, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RouteName != nil {
		row.RouteName = strings.TrimSpace(*req.RouteName)
	}
	if req.RouteNumber != nil {
		row.RouteNumber = strings.TrimSpace(*req.RouteNumber)
	}
	if req.VehicleNumber != nil {
		row.VehicleNumber = *req.VehicleNumber
	}
	if req.DriverName != nil {
		row.DriverName = *req.DriverName
	}
	if req.DriverPhone != nil {
		row.DriverPhone = *req.DriverPhone
	}
	if req.Capacity != nil {
		row.Capacity = *req.Capacity
	}
	if req.Fare != nil {
		row.Fare = *req.Fare
	}
	if req.Stops != nil {
		stops, err := encodeStops(req.Stops)
		if err != nil {
			return nil, internal.NewInternalError("failed to encode stops", err)
		}
		row.Stops = stops
	}

	if err := s.repo.Update(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Route number already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to update route", "route_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update route", err)
	}
	return s.withRiders(ctx, row)
}

// AssignStudent adds a rider to the route. Assigning the same student twice
// only refreshes the stop.
func (s *Service) AssignStudent(ctx context.Context, routeID int64, req AssignRequest) (*Route, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	row, err := s.load(ctx, routeID)
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.StudentExists(ctx, req.StudentID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load student", err)
	}
	if !ok {
		return nil, internal.ErrStudentNotFound
	}

	if err := s.repo.AssignStudent(ctx, &transitDatamodel.RouteStudent{
		RouteID:   routeID,
		StudentID: req.StudentID,
		StopName:  req.StopName,
	}); err != nil {
		s.logger.Error("failed to assign student to route", "route_id", routeID, "student_id", req.StudentID, "error", err)
		return nil, internal.NewInternalError("failed to assign student", err)
	}
	return s.withRiders(ctx, row)
}

func (s *Service) load(ctx context.Context, id int64) (*transitDatamodel.Route, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load route", err)
	}
	if row == nil {
		return nil, internal.ErrRouteNotFound
	}
	return row, nil
}

func (s *Service) withRiders(ctx context.Context, row *transitDatamodel.Route) (*Route, error) {
	riders, err := s.repo.StudentIDs(ctx, []int64{row.ID})
	if err != nil {
		return nil, internal.NewInternalError("failed to list route students", err)
	}
	return FromDataModel(row, riders[row.ID]), nil
}

func encodeStops(stops []Stop) (datatypes.JSON, error) {
	if stops == nil {
		stops = []Stop{}
	}
	sorted := append([]Stop(nil), stops...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	b, err := json.Marshal(sorted)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
