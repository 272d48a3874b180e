package schoolclass

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
	classDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/schoolclass"
)

type RepositoryAPI interface {
	List(ctx context.Context, sessionID *int64) ([]*classDatamodel.Class, error)
	GetByID(ctx context.Context, id int64) (*classDatamodel.Class, error)
	Roster(ctx context.Context, classID int64) ([]int64, error)
	Create(ctx context.Context, c *classDatamodel.Class) error
	Update(ctx context.Context, c *classDatamodel.Class) error
	Delete(ctx context.Context, id int64) error
	StudentExists(ctx context.Context, studentID int64) (bool, error)
	// AddStudent is a no-op when the student is already on the roster.
	AddStudent(ctx context.Context, classID, studentID int64) error
	RemoveStudent(ctx context.Context, classID, studentID int64) error
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

func (s *Service) List(ctx context.Context, sessionID *int64) ([]*Class, error) {
	rows, err := s.repo.List(ctx, sessionID)
	if err != nil {
		s.logger.Error("failed to list classes", "error", err)
		return nil, internal.NewInternalError("failed to list classes", err)
	}
	out := make([]*Class, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row, nil))
	}
	return out, nil
}

// GetByID returns the class with its roster.
func (s *Service) GetByID(ctx context.Context, id int64) (*Class, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	roster, err := s.repo.Roster(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load roster", err)
	}
	return FromDataModel(row, roster), nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Class, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	row := &classDatamodel.Class{
		Name:           strings.TrimSpace(req.Name),
		Grade:          req.Grade,
		Section:        req.Section,
		SessionID:      req.SessionID,
		ClassTeacherID: req.ClassTeacherID,
		Room:           req.Room,
		Capacity:       req.Capacity,
		IsActive:       req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create class", "name", row.Name, "error", err)
		return nil, internal.NewInternalError("failed to create class", err)
	}
	return FromDataModel(row, nil), nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Class, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		row.Name = strings.TrimSpace(*req.Name)
	}
	if req.Grade != nil {
		row.Grade = *req.Grade
	}
	if req.Section != nil {
		row.Section = *req.Section
	}
	if req.SessionID != nil {
		row.SessionID = req.SessionID
	}
	if req.ClassTeacherID != nil {
		row.ClassTeacherID = req.ClassTeacherID
	}
	if req.Room != nil {
		row.Room = *req.Room
	}
	if req.Capacity != nil {
		row.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}
	row.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update class", "class_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update class", err)
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete class", "class_id", id, "error", err)
		return internal.NewInternalError("failed to delete class", err)
	}
	return nil
}

func (s *Service) AddStudent(ctx context.Context, classID int64, req AddStudentRequest) (*Class, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	row, err := s.load(ctx, classID)
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

	roster, err := s.repo.Roster(ctx, classID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load roster", err)
	}
	if row.Capacity > 0 && len(roster) >= row.Capacity && !contains(roster, req.StudentID) {
		return nil, internal.NewValidationError("Class is full", internal.ErrCodeValidationFailed)
	}

	if err := s.repo.AddStudent(ctx, classID, req.StudentID); err != nil {
		s.logger.Error("failed to add student to class", "class_id", classID, "student_id", req.StudentID, "error", err)
		return nil, internal.NewInternalError("failed to add student", err)
	}
	return s.GetByID(ctx, classID)
}

func (s *Service) RemoveStudent(ctx context.Context, classID, studentID int64) (*Class, error) {
	if _, err := s.load(ctx, classID); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveStudent(ctx, classID, studentID); err != nil {
		s.logger.Error("failed to remove student from class", "class_id", classID, "student_id", studentID, "error", err)
		return nil, internal.NewInternalError("failed to remove student", err)
	}
	return s.GetByID(ctx, classID)
}

func (s *Service) load(ctx context.Context, id int64) (*classDatamodel.Class, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load class", err)
	}
	if row == nil {
		return nil, internal.ErrClassNotFound
	}
	return row, nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
