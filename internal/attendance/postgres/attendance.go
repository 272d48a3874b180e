package postgres

import (
	"context"

	"github.com/frahmantamala/edumaster/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/attendance"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"gorm.io/gorm"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.RepositoryAPI {
	return &AttendanceRepository{
		db: db,
	}
}

func (r *AttendanceRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&studentDatamodel.Student{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AttendanceRepository) Create(ctx context.Context, a *attendanceDatamodel.Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// List returns the newest dates first. The range is inclusive on both ends.
func (r *AttendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]*attendanceDatamodel.Attendance, error) {
	q := r.db.WithContext(ctx).Model(&attendanceDatamodel.Attendance{})
	if filter.StudentID != nil {
		q = q.Where("student_id = ?", *filter.StudentID)
	}
	if filter.ClassID != nil {
		q = q.Where("class_id = ?", *filter.ClassID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("date >= ? AND date <= ?", *filter.StartDate, *filter.EndDate)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*attendanceDatamodel.Attendance
	if err := q.Order("date DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
