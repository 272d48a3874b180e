package postgres

import (
	"context"
	"strings"

	"github.com/frahmantamala/edumaster/internal"
	teacherDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/teacher"
	"github.com/frahmantamala/edumaster/internal/teacher"
	"gorm.io/gorm"
)

type TeacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) teacher.RepositoryAPI {
	return &TeacherRepository{
		db: db,
	}
}

func (r *TeacherRepository) List(ctx context.Context, filter teacher.ListFilter) ([]*teacherDatamodel.Teacher, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(employee_id) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*teacherDatamodel.Teacher
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*teacherDatamodel.Teacher, error) {
	var t teacherDatamodel.Teacher
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeacherRepository) Create(ctx context.Context, t *teacherDatamodel.Teacher) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return internal.CreateWithCode(tx, t, &t.EmployeeID, &t.ID, "employee_id", teacher.CodePrefix)
	})
}

func (r *TeacherRepository) Update(ctx context.Context, t *teacherDatamodel.Teacher) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("classes").Where("class_teacher_id = ?", id).Update("class_teacher_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&teacherDatamodel.Teacher{}, id).Error
	})
}
