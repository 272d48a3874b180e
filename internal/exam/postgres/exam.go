package postgres

import (
	"context"

	examDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/exam"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/exam"
	"gorm.io/gorm"
)

type ExamRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) exam.RepositoryAPI {
	return &ExamRepository{
		db: db,
	}
}

func (r *ExamRepository) List(ctx context.Context, filter exam.ListFilter) ([]*examDatamodel.Exam, error) {
	q := r.db.WithContext(ctx).Model(&examDatamodel.Exam{})
	if filter.ClassID != nil {
		q = q.Where("class_id = ?", *filter.ClassID)
	}
	if filter.SessionID != nil {
		q = q.Where("session_id = ?", *filter.SessionID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*examDatamodel.Exam
	if err := q.Order("date DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*examDatamodel.Exam, error) {
	var e examDatamodel.Exam
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExamRepository) Create(ctx context.Context, e *examDatamodel.Exam) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExamRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&studentDatamodel.Student{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ExamRepository) ListResults(ctx context.Context, filter exam.ResultFilter) ([]*examDatamodel.Result, error) {
	q := r.db.WithContext(ctx).Model(&examDatamodel.Result{})
	if filter.ExamID != nil {
		q = q.Where("exam_id = ?", *filter.ExamID)
	}
	if filter.StudentID != nil {
		q = q.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*examDatamodel.Result
	if err := q.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ExamRepository) CreateResult(ctx context.Context, res *examDatamodel.Result) error {
	return r.db.WithContext(ctx).Create(res).Error
}
