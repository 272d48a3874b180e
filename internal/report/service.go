package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/core/common/dates"
)

type RepositoryAPI interface {
	// GetSession returns nil when the session does not exist.
	GetSession(ctx context.Context, id int64) (*Session, error)
	CountByStatus(ctx context.Context, sessionID int64) (StatusCounts, error)
	GetStudent(ctx context.Context, id int64) (*Student, error)
	Progression(ctx context.Context, studentID int64) ([]*ProgressionRow, error)
	// Dashboard counts attendance marked present in [dayStart, dayEnd).
	Dashboard(ctx context.Context, dayStart, dayEnd time.Time) (*Dashboard, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) SessionStatistics(ctx context.Context, sessionID int64) (*SessionStatistics, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load session", err)
	}
	if session == nil {
		return nil, internal.ErrSessionNotFound
	}
	counts, err := s.repo.CountByStatus(ctx, sessionID)
	if err != nil {
		s.logger.Error("failed to count session histories", "session_id", sessionID, "error", err)
		return nil, internal.NewInternalError("failed to compute statistics", err)
	}
	return &SessionStatistics{Session: session, Statistics: NewStatistics(counts)}, nil
}

func (s *Service) Progression(ctx context.Context, studentID int64) (*Progression, error) {
	student, err := s.repo.GetStudent(ctx, studentID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load student", err)
	}
	if student == nil {
		return nil, internal.ErrStudentNotFound
	}
	rows, err := s.repo.Progression(ctx, studentID)
	if err != nil {
		s.logger.Error("failed to load progression", "student_id", studentID, "error", err)
		return nil, internal.NewInternalError("failed to load progression", err)
	}
	for _, row := range rows {
		row.Finish()
	}
	if rows == nil {
		rows = []*ProgressionRow{}
	}
	return &Progression{Student: student, History: rows}, nil
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	start := dates.StartOfDay(s.now())
	d, err := s.repo.Dashboard(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("failed to load dashboard stats", "error", err)
		return nil, internal.NewInternalError("failed to load dashboard stats", err)
	}
	d.AttendanceRate = Rate(d.PresentToday, d.TotalStudents)
	return d, nil
}
