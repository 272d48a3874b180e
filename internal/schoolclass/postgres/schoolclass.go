package postgres

import (
	"context"

	classDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/schoolclass"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/schoolclass"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClassRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) schoolclass.RepositoryAPI {
	return &ClassRepository{
		db: db,
	}
}

func (r *ClassRepository) List(ctx context.Context, sessionID *int64) ([]*classDatamodel.Class, error) {
	q := r.db.WithContext(ctx).Order("grade ASC, section ASC, name ASC")
	if sessionID != nil {
		q = q.Where("session_id = ?", *sessionID)
	}
	var rows []*classDatamodel.Class
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*classDatamodel.Class, error) {
	var c classDatamodel.Class
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClassRepository) Roster(ctx context.Context, classID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&classDatamodel.ClassStudent{}).
		Where("class_id = ?", classID).
		Order("student_id ASC").
		Pluck("student_id", &ids).Error
	return ids, err
}

func (r *ClassRepository) Create(ctx context.Context, c *classDatamodel.Class) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClassRepository) Update(ctx context.Context, c *classDatamodel.Class) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", id).Delete(&classDatamodel.ClassStudent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&classDatamodel.Class{}, id).Error
	})
}

func (r *ClassRepository) StudentExists(ctx context.Context, studentID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&studentDatamodel.Student{}).Where("id = ?", studentID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ClassRepository) AddStudent(ctx context.Context, classID, studentID int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&classDatamodel.ClassStudent{ClassID: classID, StudentID: studentID}).Error
}

func (r *ClassRepository) RemoveStudent(ctx context.Context, classID, studentID int64) error {
	return r.db.WithContext(ctx).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Delete(&classDatamodel.ClassStudent{}).Error
}
