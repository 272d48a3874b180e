package postgres

import (
	"context"

	"github.com/frahmantamala/edumaster/internal/audit"
	auditDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) audit.RepositoryAPI {
	return &ActivityRepository{
		db: db,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, a *auditDatamodel.ActivityLog) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ActivityRepository) List(ctx context.Context, filter audit.ListFilter) ([]*auditDatamodel.ActivityLog, error) {
	q := r.db.WithContext(ctx).Model(&auditDatamodel.ActivityLog{})
	if filter.EventType != "" {
		q = q.Where("event_type = ?", filter.EventType)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*auditDatamodel.ActivityLog
	if err := q.Order("occurred_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
