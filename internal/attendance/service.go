package attendance

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/core/common/dates"
	attendanceDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/attendance"
)

type RepositoryAPI interface {
	StudentExists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, a *attendanceDatamodel.Attendance) error
	List(ctx context.Context, filter ListFilter) ([]*attendanceDatamodel.Attendance, error)
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

// Mark records attendance on behalf of the caller.
func (s *Service) Mark(ctx context.Context, req CreateRequest) (*Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ok, err := s.repo.StudentExists(ctx, req.StudentID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load student", err)
	}
	if !ok {
		return nil, internal.ErrStudentNotFound
	}

	row := &attendanceDatamodel.Attendance{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Date:      dates.StartOfDay(req.Date.Time),
		Status:    req.Status,
		Remarks:   req.Remarks,
	}
	if actorID := internal.UserIDFromContext(ctx); actorID != 0 {
		row.MarkedBy = &actorID
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to mark attendance", "student_id", req.StudentID, "error", err)
		return nil, internal.NewInternalError("failed to mark attendance", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list attendance", "error", err)
		return nil, internal.NewInternalError("failed to list attendance", err)
	}
	out := make([]*Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}
