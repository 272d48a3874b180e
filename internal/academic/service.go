package academic

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
	"github.com/frahmantamala/edumaster/internal/core/events"
	"gorm.io/datatypes"
)

type RepositoryAPI interface {
	ListSessions(ctx context.Context) ([]*academicDatamodel.Session, error)
	GetSession(ctx context.Context, id int64) (*academicDatamodel.Session, error)
	GetCurrentSession(ctx context.Context) (*academicDatamodel.Session, error)
	CreateSession(ctx context.Context, s *academicDatamodel.Session) error
	UpdateSession(ctx context.Context, s *academicDatamodel.Session) error
	// SetCurrent clears the current flag everywhere and sets it on id in one
	// transaction. A missing id returns ErrSessionNotFound and changes nothing.
	SetCurrent(ctx context.Context, id int64) (*academicDatamodel.Session, error)

	StudentExists(ctx context.Context, studentID int64) (bool, error)
	ListHistory(ctx context.Context, studentID int64) ([]*academicDatamodel.History, error)
	GetHistory(ctx context.Context, studentID, sessionID int64) (*academicDatamodel.History, error)
	CreateHistory(ctx context.Context, h *academicDatamodel.History) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      RepositoryAPI
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) ListSessions(ctx context.Context) ([]*Session, error) {
	rows, err := s.repo.ListSessions(ctx)
	if err != nil {
		s.logger.Error("failed to list sessions", "error", err)
		return nil, internal.NewInternalError("failed to list sessions", err)
	}
	out := make([]*Session, 0, len(rows))
	for _, row := range rows {
		out = append(out, SessionFromDataModel(row))
	}
	return out, nil
}

func (s *Service) GetSession(ctx context.Context, id int64) (*Session, error) {
	row, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return SessionFromDataModel(row), nil
}

func (s *Service) GetCurrentSession(ctx context.Context) (*Session, error) {
	row, err := s.repo.GetCurrentSession(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to load current session", err)
	}
	if row == nil {
		return nil, internal.ErrNoCurrentSession
	}
	return SessionFromDataModel(row), nil
}

func (s *Service) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = SessionUpcoming
	}

	row := &academicDatamodel.Session{
		SessionName: strings.TrimSpace(req.SessionName),
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		IsActive:    status == SessionActive,
		Status:      status,
		Description: req.Description,
	}
	if err := s.repo.CreateSession(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Session name already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to create session", "name", row.SessionName, "error", err)
		return nil, internal.NewInternalError("failed to create session", err)
	}

	s.logger.Info("session created", "session_id", row.ID, "name", row.SessionName)
	return SessionFromDataModel(row), nil
}

func (s *Service) UpdateSession(ctx context.Context, id int64, req UpdateSessionRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	row, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SessionName != nil {
		row.SessionName = strings.TrimSpace(*req.SessionName)
	}
	if req.StartDate != nil {
		row.StartDate = req.StartDate.Time
	}
	if req.EndDate != nil {
		row.EndDate = req.EndDate.Time
	}
	if !row.EndDate.After(row.StartDate) {
		return nil, internal.NewValidationFieldError("end_date", "end_date must be after start_date", internal.ErrCodeInvalidDate)
	}
	if req.Status != nil {
		row.Status = *req.Status
	}
	if req.Description != nil {
		row.Description = *req.Description
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}
	row.UpdatedAt = time.Now()

	if err := s.repo.UpdateSession(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Session name already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to update session", "session_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update session", err)
	}
	return SessionFromDataModel(row), nil
}

// SetCurrent makes id the only current session.
func (s *Service) SetCurrent(ctx context.Context, id int64) (*Session, error) {
	row, err := s.repo.SetCurrent(ctx, id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to set current session", "session_id", id, "error", err)
		return nil, internal.NewInternalError("failed to set current session", err)
	}

	actorID := internal.UserIDFromContext(ctx)
	s.logger.Info("current session changed", "session_id", id, "actor_id", actorID)
	s.publish(ctx, events.NewSessionCurrentChangedEvent(id, actorID))
	return SessionFromDataModel(row), nil
}

// Close completes a session and takes it out of use.
func (s *Service) Close(ctx context.Context, id int64) (*Session, error) {
	row, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	row.IsActive = false
	row.IsCurrent = false
	row.Status = SessionCompleted
	row.UpdatedAt = time.Now()

	if err := s.repo.UpdateSession(ctx, row); err != nil {
		s.logger.Error("failed to close session", "session_id", id, "error", err)
		return nil, internal.NewInternalError("failed to close session", err)
	}
	return SessionFromDataModel(row), nil
}

func (s *Service) ListHistory(ctx context.Context, studentID int64) ([]*History, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListHistory(ctx, studentID)
	if err != nil {
		s.logger.Error("failed to list history", "student_id", studentID, "error", err)
		return nil, internal.NewInternalError("failed to list history", err)
	}
	out := make([]*History, 0, len(rows))
	for _, row := range rows {
		out = append(out, HistoryFromDataModel(row))
	}
	return out, nil
}

func (s *Service) GetHistory(ctx context.Context, studentID, sessionID int64) (*History, error) {
	row, err := s.repo.GetHistory(ctx, studentID, sessionID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load history", err)
	}
	if row == nil {
		return nil, internal.ErrHistoryNotFound
	}
	return HistoryFromDataModel(row), nil
}

// CreateHistory opens an active record. A student has at most one record per
// session.
func (s *Service) CreateHistory(ctx context.Context, studentID int64, req CreateHistoryRequest) (*History, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.loadSession(ctx, req.SessionID); err != nil {
		return nil, err
	}

	row := &academicDatamodel.History{
		StudentID:  studentID,
		SessionID:  req.SessionID,
		ClassID:    req.ClassID,
		Section:    req.Section,
		RollNumber: req.RollNumber,
		Attendance: academicDatamodel.Attendance{
			TotalDays:   req.Attendance.TotalDays,
			PresentDays: req.Attendance.PresentDays,
			Percentage:  req.Attendance.Percentage,
		},
		Performance: academicDatamodel.Performance{
			Percentage: req.Performance.Percentage,
			Grade:      req.Performance.Grade,
			Status:     req.Performance.Status,
		},
		SessionStatus: HistoryActive,
		Remarks:       req.Remarks,
		Conduct:       req.Conduct,
	}
	if len(req.FeesData) > 0 {
		row.FeesData = datatypes.JSON(req.FeesData)
	}

	if err := s.repo.CreateHistory(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("History already exists for this session", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to create history", "student_id", studentID, "session_id", req.SessionID, "error", err)
		return nil, internal.NewInternalError("failed to create history", err)
	}
	return HistoryFromDataModel(row), nil
}

func (s *Service) loadSession(ctx context.Context, id int64) (*academicDatamodel.Session, error) {
	row, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load session", err)
	}
	if row == nil {
		return nil, internal.ErrSessionNotFound
	}
	return row, nil
}

func (s *Service) ensureStudent(ctx context.Context, studentID int64) error {
	ok, err := s.repo.StudentExists(ctx, studentID)
	if err != nil {
		return internal.NewInternalError("failed to load student", err)
	}
	if !ok {
		return internal.ErrStudentNotFound
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("failed to publish session event", "event_type", event.EventType(), "error", err)
	}
}
