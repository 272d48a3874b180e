package exam

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/edumaster/internal"
	examDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/exam"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*examDatamodel.Exam, error)
	GetByID(ctx context.Context, id int64) (*examDatamodel.Exam, error)
	Create(ctx context.Context, e *examDatamodel.Exam) error
	StudentExists(ctx context.Context, id int64) (bool, error)
	ListResults(ctx context.Context, filter ResultFilter) ([]*examDatamodel.Result, error)
	CreateResult(ctx context.Context, r *examDatamodel.Result) error
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Exam, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list exams", "error", err)
		return nil, internal.NewInternalError("failed to list exams", err)
	}
	out := make([]*Exam, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Exam, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	row := &examDatamodel.Exam{
		Name:         strings.TrimSpace(req.Name),
		ExamType:     req.ExamType,
		ClassID:      req.ClassID,
		Subject:      req.Subject,
		SessionID:    req.SessionID,
		Date:         req.Date.Time,
		TotalMarks:   req.TotalMarks,
		PassingMarks: req.PassingMarks,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create exam", "name", row.Name, "error", err)
		return nil, internal.NewInternalError("failed to create exam", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) ListResults(ctx context.Context, filter ResultFilter) ([]*Result, error) {
	rows, err := s.repo.ListResults(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list results", "error", err)
		return nil, internal.NewInternalError("failed to list results", err)
	}
	out := make([]*Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, ResultFromDataModel(row))
	}
	return out, nil
}

// CreateResult scores a student on an exam. The grade is derived from the
// percentage unless one is given.
func (s *Service) CreateResult(ctx context.Context, req CreateResultRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	e, err := s.repo.GetByID(ctx, req.ExamID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load exam", err)
	}
	if e == nil {
		return nil, internal.ErrExamNotFound
	}
	if req.MarksObtained > e.TotalMarks {
		return nil, internal.NewValidationFieldError("marks_obtained", "marks_obtained cannot exceed total_marks", internal.ErrCodeValidationFailed)
	}
	ok, err := s.repo.StudentExists(ctx, req.StudentID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load student", err)
	}
	if !ok {
		return nil, internal.ErrStudentNotFound
	}

	pct := Percentage(req.MarksObtained, e.TotalMarks)
	grade := strings.TrimSpace(req.Grade)
	if grade == "" {
		grade = Grade(pct)
	}
	row := &examDatamodel.Result{
		ExamID:        req.ExamID,
		StudentID:     req.StudentID,
		MarksObtained: req.MarksObtained,
		Percentage:    pct,
		Grade:         grade,
		Passed:        req.MarksObtained >= e.PassingMarks,
		Remarks:       req.Remarks,
	}
	if err := s.repo.CreateResult(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Result already recorded for this student", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to create result", "exam_id", req.ExamID, "student_id", req.StudentID, "error", err)
		return nil, internal.NewInternalError("failed to create result", err)
	}
	return ResultFromDataModel(row), nil
}
