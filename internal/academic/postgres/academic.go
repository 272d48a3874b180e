package postgres

import (
	"context"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/academic"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"gorm.io/gorm"
)

type AcademicRepository struct {
	db *gorm.DB
}

func NewAcademicRepository(db *gorm.DB) academic.RepositoryAPI {
	return &AcademicRepository{
		db: db,
	}
}

func (r *AcademicRepository) ListSessions(ctx context.Context) ([]*academicDatamodel.Session, error) {
	var rows []*academicDatamodel.Session
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AcademicRepository) GetSession(ctx context.Context, id int64) (*academicDatamodel.Session, error) {
	return firstSession(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *AcademicRepository) GetCurrentSession(ctx context.Context) (*academicDatamodel.Session, error) {
	return firstSession(r.db.WithContext(ctx).Where("is_current = ?", true))
}

func (r *AcademicRepository) CreateSession(ctx context.Context, s *academicDatamodel.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *AcademicRepository) UpdateSession(ctx context.Context, s *academicDatamodel.Session) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *AcademicRepository) SetCurrent(ctx context.Context, id int64) (*academicDatamodel.Session, error) {
	var target *academicDatamodel.Session
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := firstSession(tx.Where("id = ?", id))
		if err != nil {
			return err
		}
		if s == nil {
			return internal.ErrSessionNotFound
		}

		if err := tx.Model(&academicDatamodel.Session{}).
			Where("is_current = ?", true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		if err := tx.Model(s).Updates(map[string]interface{}{
			"is_current": true,
			"is_active":  true,
			"status":     academic.SessionActive,
		}).Error; err != nil {
			return err
		}

		s.IsCurrent = true
		s.IsActive = true
		s.Status = academic.SessionActive
		target = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

func (r *AcademicRepository) StudentExists(ctx context.Context, studentID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&studentDatamodel.Student{}).Where("id = ?", studentID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListHistory orders a student's records by the start of their sessions.
func (r *AcademicRepository) ListHistory(ctx context.Context, studentID int64) ([]*academicDatamodel.History, error) {
	var rows []*academicDatamodel.History
	err := r.db.WithContext(ctx).
		Joins("JOIN academic_sessions ON academic_sessions.id = student_academic_histories.session_id").
		Where("student_academic_histories.student_id = ?", studentID).
		Order("academic_sessions.start_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AcademicRepository) GetHistory(ctx context.Context, studentID, sessionID int64) (*academicDatamodel.History, error) {
	var h academicDatamodel.History
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND session_id = ?", studentID, sessionID).
		First(&h).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *AcademicRepository) CreateHistory(ctx context.Context, h *academicDatamodel.History) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func firstSession(q *gorm.DB) (*academicDatamodel.Session, error) {
	var s academicDatamodel.Session
	if err := q.First(&s).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
