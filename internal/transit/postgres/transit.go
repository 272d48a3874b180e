package postgres

import (
	"context"
	"errors"

	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	transitDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/transit"
	"github.com/frahmantamala/edumaster/internal/transit"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) transit.RepositoryAPI {
	return &RouteRepository{
		db: db,
	}
}

func (r *RouteRepository) List(ctx context.Context) ([]*transitDatamodel.Route, error) {
	var rows []*transitDatamodel.Route
	if err := r.db.WithContext(ctx).Order("route_number ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RouteRepository) GetByID(ctx context.Context, id int64) (*transitDatamodel.Route, error) {
	var row transitDatamodel.Route
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *RouteRepository) Create(ctx context.Context, route *transitDatamodel.Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *RouteRepository) Update(ctx context.Context, route *transitDatamodel.Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

func (r *RouteRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&studentDatamodel.Student{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RouteRepository) AssignStudent(ctx context.Context, rs *transitDatamodel.RouteStudent) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "route_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stop_name"}),
	}).Create(rs).Error
}

func (r *RouteRepository) StudentIDs(ctx context.Context, routeIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(routeIDs))
	if len(routeIDs) == 0 {
		return out, nil
	}
	var rows []transitDatamodel.RouteStudent
	if err := r.db.WithContext(ctx).Where("route_id IN ?", routeIDs).Order("student_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RouteID] = append(out[row.RouteID], row.StudentID)
	}
	return out, nil
}
