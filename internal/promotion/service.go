package promotion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/core/events"
)

// RepositoryAPI runs every per-student write sequence in its own transaction.
// History rows are only changed while they are still active, so two callers
// racing on the same student cannot both close the same record.
type RepositoryAPI interface {
	GetSession(ctx context.Context, id int64) (*academicDatamodel.Session, error)
	ClassExists(ctx context.Context, id int64) (bool, error)
	GetStudent(ctx context.Context, id int64) (*studentDatamodel.Student, error)

	Promote(ctx context.Context, m Move) error
	Detain(ctx context.Context, studentID, sessionID int64, remarks string) error
	Graduate(ctx context.Context, studentID, sessionID int64) error

	CreateRequest(ctx context.Context, p *academicDatamodel.PromotionRequest) error
	ListRequests(ctx context.Context, filter ListFilter) ([]*academicDatamodel.PromotionRequest, error)

	CreateTransfer(ctx context.Context, t *academicDatamodel.TransferRequest) error
	ListTransfers(ctx context.Context, filter TransferFilter) ([]*academicDatamodel.TransferRequest, error)
	GetTransfer(ctx context.Context, id int64) (*academicDatamodel.TransferRequest, error)
	ApproveTransfer(ctx context.Context, id, approverID int64, tcNumber string, at time.Time) (*academicDatamodel.TransferRequest, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      RepositoryAPI
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Bulk promotes or detains every listed student. Each student is processed in
// its own transaction and failures are reported per student without stopping
// the batch.
func (s *Service) Bulk(ctx context.Context, req BulkRequest) (*BulkResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureSessions(ctx, req.FromSessionID, req.ToSessionID); err != nil {
		return nil, err
	}
	if err := s.ensureClass(ctx, req.TargetClassID); err != nil {
		return nil, err
	}

	actorID := internal.UserIDFromContext(ctx)
	result := &BulkResult{Total: len(req.Students), Errors: []ItemError{}}

	for _, item := range req.Students {
		var err error
		outcome := Decide(item.AttendancePercentage, item.Percentage, req.Criteria)
		switch outcome {
		case OutcomeDetainAttendance:
			err = s.repo.Detain(ctx, item.StudentID, req.FromSessionID, RemarksLowAttendance)
		case OutcomeDetainPercentage:
			err = s.repo.Detain(ctx, item.StudentID, req.FromSessionID, RemarksBelowCriteria)
		default:
			err = s.repo.Promote(ctx, Move{
				StudentID:     item.StudentID,
				FromSessionID: req.FromSessionID,
				ToSessionID:   req.ToSessionID,
				SourceClassID: req.SourceClassID,
				TargetClassID: req.TargetClassID,
				Section:       item.Section,
				RollNumber:    item.RollNumber,
				PromotedBy:    actorID,
				PromotedOn:    s.now(),
			})
		}

		if err != nil {
			s.logger.Warn("student not promoted", "student_id", item.StudentID, "error", err)
			result.Failed++
			result.Errors = append(result.Errors, ItemError{StudentID: item.StudentID, Error: itemMessage(err)})
			continue
		}
		if outcome == OutcomePromote {
			result.Promoted++
		} else {
			result.Detained++
		}
	}

	s.logger.Info("bulk promotion finished",
		"from_session_id", req.FromSessionID,
		"to_session_id", req.ToSessionID,
		"total", result.Total,
		"promoted", result.Promoted,
		"detained", result.Detained,
		"failed", result.Failed,
	)
	s.publish(ctx, events.NewPromotionCompletedEvent(req.FromSessionID, req.ToSessionID, result.Promoted, result.Detained, result.Failed, actorID))
	return result, nil
}

// Single promotes one student without applying criteria.
func (s *Service) Single(ctx context.Context, req SingleRequest) (*SingleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureSessions(ctx, req.FromSessionID, req.ToSessionID); err != nil {
		return nil, err
	}
	if err := s.ensureClass(ctx, req.ToClassID); err != nil {
		return nil, err
	}

	actorID := internal.UserIDFromContext(ctx)
	err := s.repo.Promote(ctx, Move{
		StudentID:     req.StudentID,
		FromSessionID: req.FromSessionID,
		ToSessionID:   req.ToSessionID,
		TargetClassID: req.ToClassID,
		Section:       req.Section,
		RollNumber:    req.RollNumber,
		PromotedBy:    actorID,
		PromotedOn:    s.now(),
	})
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to promote student", "student_id", req.StudentID, "error", err)
		return nil, internal.NewInternalError("failed to promote student", err)
	}

	s.logger.Info("student promoted", "student_id", req.StudentID, "to_session_id", req.ToSessionID)
	s.publish(ctx, events.NewPromotionCompletedEvent(req.FromSessionID, req.ToSessionID, 1, 0, 0, actorID))
	return &SingleResponse{Message: "Student promoted successfully", StudentID: req.StudentID}, nil
}

func (s *Service) Graduate(ctx context.Context, req GraduateRequest) (*GraduationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.loadSession(ctx, req.SessionID); err != nil {
		return nil, err
	}

	actorID := internal.UserIDFromContext(ctx)
	result := &GraduationResult{Total: len(req.StudentIDs), Errors: []ItemError{}}
	for _, studentID := range req.StudentIDs {
		if err := s.repo.Graduate(ctx, studentID, req.SessionID); err != nil {
			s.logger.Warn("student not graduated", "student_id", studentID, "error", err)
			result.Failed++
			result.Errors = append(result.Errors, ItemError{StudentID: studentID, Error: itemMessage(err)})
			continue
		}
		result.Graduated++
		s.publish(ctx, events.NewStudentGraduatedEvent(studentID, req.SessionID, actorID))
	}

	s.logger.Info("graduation finished", "session_id", req.SessionID, "graduated", result.Graduated, "failed", result.Failed)
	return result, nil
}

func (s *Service) CreateRequest(ctx context.Context, req CreateRequest) (*Request, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureSessions(ctx, req.FromSessionID, req.ToSessionID); err != nil {
		return nil, err
	}

	row := &academicDatamodel.PromotionRequest{
		FromSessionID:     req.FromSessionID,
		ToSessionID:       req.ToSessionID,
		PromotionType:     req.PromotionType,
		MinimumAttendance: req.Criteria.MinimumAttendance,
		MinimumPercentage: req.Criteria.MinimumPercentage,
		SourceClassID:     req.SourceClassID,
		TargetClassID:     req.TargetClassID,
		Status:            RequestPending,
		CreatedBy:         actorPtr(ctx),
	}
	if err := s.repo.CreateRequest(ctx, row); err != nil {
		s.logger.Error("failed to create promotion request", "error", err)
		return nil, internal.NewInternalError("failed to create promotion request", err)
	}
	return RequestFromDataModel(row), nil
}

func (s *Service) ListRequests(ctx context.Context, filter ListFilter) ([]*Request, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListRequests(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list promotion requests", "error", err)
		return nil, internal.NewInternalError("failed to list promotion requests", err)
	}
	out := make([]*Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, RequestFromDataModel(row))
	}
	return out, nil
}

func (s *Service) CreateTransfer(ctx context.Context, req CreateTransferRequest) (*Transfer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.loadStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if req.SessionID != nil {
		if _, err := s.loadSession(ctx, *req.SessionID); err != nil {
			return nil, err
		}
	}

	row := &academicDatamodel.TransferRequest{
		StudentID:   req.StudentID,
		SessionID:   req.SessionID,
		RequestType: req.RequestType,
		TransferTo: academicDatamodel.TransferTo{
			SchoolName:    strings.TrimSpace(req.TransferTo.SchoolName),
			SchoolAddress: req.TransferTo.SchoolAddress,
			City:          req.TransferTo.City,
			State:         req.TransferTo.State,
			Reason:        req.TransferTo.Reason,
		},
		TCDetails: academicDatamodel.TCDetails{
			LastAttendanceDate: req.TCDetails.LastAttendanceDate.Ptr(),
			Conduct:            req.TCDetails.Conduct,
			Remarks:            req.TCDetails.Remarks,
			FeesStatus:         req.TCDetails.FeesStatus,
		},
		Status:      TransferPending,
		RequestedBy: actorPtr(ctx),
		Remarks:     req.Remarks,
	}
	if err := s.repo.CreateTransfer(ctx, row); err != nil {
		s.logger.Error("failed to create transfer request", "student_id", req.StudentID, "error", err)
		return nil, internal.NewInternalError("failed to create transfer request", err)
	}
	s.logger.Info("transfer requested", "transfer_id", row.ID, "student_id", row.StudentID)
	return TransferFromDataModel(row), nil
}

func (s *Service) ListTransfers(ctx context.Context, filter TransferFilter) ([]*Transfer, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListTransfers(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list transfers", "error", err)
		return nil, internal.NewInternalError("failed to list transfers", err)
	}
	out := make([]*Transfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, TransferFromDataModel(row))
	}
	return out, nil
}

// ApproveTransfer issues the transfer certificate and closes the student's
// record for the session.
func (s *Service) ApproveTransfer(ctx context.Context, id int64) (*ApproveResponse, error) {
	actorID := internal.UserIDFromContext(ctx)
	now := s.now()
	tcNumber := fmt.Sprintf("TC%d", now.UnixMilli())

	row, err := s.repo.ApproveTransfer(ctx, id, actorID, tcNumber, now)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to approve transfer", "transfer_id", id, "error", err)
		return nil, internal.NewInternalError("failed to approve transfer", err)
	}

	s.logger.Info("transfer approved", "transfer_id", id, "student_id", row.StudentID, "tc_number", tcNumber)
	s.publish(ctx, events.NewTransferApprovedEvent(id, row.StudentID, tcNumber, actorID))
	return &ApproveResponse{
		Message:  "Transfer approved and TC issued",
		Transfer: TransferFromDataModel(row),
		TCNumber: tcNumber,
	}, nil
}

func (s *Service) Certificate(ctx context.Context, id int64) (*Certificate, error) {
	t, err := s.repo.GetTransfer(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load transfer", err)
	}
	if t == nil || t.Status != TransferApproved {
		return nil, internal.ErrApprovedTransferNotFound
	}

	st, err := s.loadStudent(ctx, t.StudentID)
	if err != nil {
		return nil, err
	}
	cert := &Certificate{
		TCNumber:  t.TCDetails.TCNumber,
		IssueDate: t.TCDetails.IssueDate,
		Student: CertificateStudent{
			Name:            strings.TrimSpace(st.FirstName + " " + st.LastName),
			AdmissionNumber: st.AdmissionNumber,
			ClassID:         st.CurrentClassID,
			DateOfBirth:     st.DateOfBirth,
		},
		LastAttendance: t.TCDetails.LastAttendanceDate,
		Conduct:        t.TCDetails.Conduct,
		FeesStatus:     t.TCDetails.FeesStatus,
		Remarks:        t.TCDetails.Remarks,
		TransferTo:     t.TransferTo.SchoolName,
	}
	if t.SessionID != nil {
		sess, err := s.repo.GetSession(ctx, *t.SessionID)
		if err != nil {
			return nil, internal.NewInternalError("failed to load session", err)
		}
		if sess != nil {
			cert.Session = sess.SessionName
		}
	}
	return cert, nil
}

func (s *Service) ensureSessions(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if _, err := s.loadSession(ctx, id); err != nil {
			return err
		}
	}
	return nil
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

func (s *Service) ensureClass(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := s.repo.ClassExists(ctx, *id)
	if err != nil {
		return internal.NewInternalError("failed to load class", err)
	}
	if !ok {
		return internal.ErrClassNotFound
	}
	return nil
}

func (s *Service) loadStudent(ctx context.Context, id int64) (*studentDatamodel.Student, error) {
	row, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load student", err)
	}
	if row == nil {
		return nil, internal.ErrStudentNotFound
	}
	return row, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("failed to publish promotion event", "event_type", event.EventType(), "error", err)
	}
}

// itemMessage hides storage errors from batch results.
func itemMessage(err error) string {
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr.GetDetailedMessage()
	}
	return "internal server error"
}

func actorPtr(ctx context.Context) *int64 {
	id := internal.UserIDFromContext(ctx)
	if id == 0 {
		return nil
	}
	return &id
}
