package postgres

import (
	"context"
	"strings"

	"github.com/frahmantamala/edumaster/internal"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
	classDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/schoolclass"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/student"
	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) student.RepositoryAPI {
	return &StudentRepository{
		db: db,
	}
}

func (r *StudentRepository) List(ctx context.Context, filter student.ListFilter) ([]*studentDatamodel.Student, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if filter.ClassID != nil {
		q = q.Where("current_class_id = ?", *filter.ClassID)
	}
	if filter.Section != "" {
		q = q.Where("current_section = ?", filter.Section)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(student_code) LIKE ? OR LOWER(admission_number) LIKE ?",
			like, like, like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*studentDatamodel.Student
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*studentDatamodel.Student, error) {
	return findStudent(r.db.WithContext(ctx), id)
}

func (r *StudentRepository) Create(ctx context.Context, s *studentDatamodel.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enroll := s.CurrentSessionID != nil && s.CurrentClassID != nil
		if enroll {
			if err := exists(tx, &academicDatamodel.Session{}, *s.CurrentSessionID, internal.ErrSessionNotFound); err != nil {
				return err
			}
			if err := exists(tx, &classDatamodel.Class{}, *s.CurrentClassID, internal.ErrClassNotFound); err != nil {
				return err
			}
		}

		if err := internal.CreateWithCode(tx, s, &s.StudentCode, &s.ID, "student_code", student.CodePrefix); err != nil {
			return err
		}
		if !enroll {
			return nil
		}

		history := &academicDatamodel.History{
			StudentID:     s.ID,
			SessionID:     *s.CurrentSessionID,
			ClassID:       s.CurrentClassID,
			Section:       s.CurrentSection,
			RollNumber:    s.CurrentRollNumber,
			SessionStatus: "active",
		}
		if err := tx.Create(history).Error; err != nil {
			return err
		}
		return tx.Create(&classDatamodel.ClassStudent{ClassID: *s.CurrentClassID, StudentID: s.ID}).Error
	})
}

// Update writes only the columns named in c, so fields owned by promotion
// and transfer are never overwritten from a stale read.
func (r *StudentRepository) Update(ctx context.Context, id int64, c student.Changes) (*studentDatamodel.Student, error) {
	var updated *studentDatamodel.Student
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.Status != nil {
			res := tx.Model(&studentDatamodel.Student{}).
				Where("id = ? AND status = ?", id, c.PriorStatus).
				Update("status", *c.Status)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				found, err := findStudent(tx, id)
				if err != nil || found == nil {
					return err
				}
				return internal.ErrStudentStatusChanged
			}
		}
		if len(c.Columns) > 0 {
			if err := tx.Model(&studentDatamodel.Student{}).Where("id = ?", id).Updates(c.Columns).Error; err != nil {
				return err
			}
		}

		found, err := findStudent(tx, id)
		if err != nil {
			return err
		}
		updated = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&classDatamodel.ClassStudent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&academicDatamodel.History{}).Error; err != nil {
			return err
		}
		return tx.Delete(&studentDatamodel.Student{}, id).Error
	})
}

func exists(tx *gorm.DB, model interface{}, id int64, missing error) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return missing
	}
	return nil
}

func findStudent(q *gorm.DB, id int64) (*studentDatamodel.Student, error) {
	var s studentDatamodel.Student
	if err := q.Where("id = ?", id).First(&s).Error; err != nil {
		if internal.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
