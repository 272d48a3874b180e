package teacher

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	teacherDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/teacher"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*teacherDatamodel.Teacher, error)
	GetByID(ctx context.Context, id int64) (*teacherDatamodel.Teacher, error)
	// Create assigns the next employee id.
	Create(ctx context.Context, t *teacherDatamodel.Teacher) error
	Update(ctx context.Context, t *teacherDatamodel.Teacher) error
	Delete(ctx context.Context, id int64) error
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Teacher, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list teachers", "error", err)
		return nil, internal.NewInternalError("failed to list teachers", err)
	}
	out := make([]*Teacher, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Teacher, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Teacher, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = StatusActive
	}

	row := &teacherDatamodel.Teacher{
		UserID:         req.UserID,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		Qualification:  req.Qualification,
		Specialization: req.Specialization,
		JoiningDate:    req.JoiningDate.Ptr(),
		Salary:         req.Salary,
		Status:         status,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Teacher already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to create teacher", "error", err)
		return nil, internal.NewInternalError("failed to create teacher", err)
	}

	s.logger.Info("teacher created", "teacher_id", row.ID, "employee_id", row.EmployeeID)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Teacher, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		row.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		row.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		row.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		row.Phone = *req.Phone
	}
	if req.Qualification != nil {
		row.Qualification = *req.Qualification
	}
	if req.Specialization != nil {
		row.Specialization = *req.Specialization
	}
	if req.JoiningDate != nil {
		row.JoiningDate = req.JoiningDate.Ptr()
	}
	if req.Salary != nil {
		row.Salary = *req.Salary
	}
	if req.Status != nil {
		row.Status = *req.Status
	}
	row.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update teacher", "teacher_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update teacher", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete teacher", "teacher_id", id, "error", err)
		return internal.NewInternalError("failed to delete teacher", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*teacherDatamodel.Teacher, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load teacher", err)
	}
	if row == nil {
		return nil, internal.ErrTeacherNotFound
	}
	return row, nil
}
