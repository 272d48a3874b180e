package fee

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	feeDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/fee"
)

type RepositoryAPI interface {
	StudentExists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*feeDatamodel.Fee, error)
	Create(ctx context.Context, f *feeDatamodel.Fee) error
	// Pay adds the payment to paid_amount in a single statement and returns
	// the updated row, or nil when the fee does not exist.
	Pay(ctx context.Context, id int64, p Payment) (*feeDatamodel.Fee, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Fee, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list fees", "error", err)
		return nil, internal.NewInternalError("failed to list fees", err)
	}
	out := make([]*Fee, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Fee, error) {
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

	row := &feeDatamodel.Fee{
		StudentID:    req.StudentID,
		FeeType:      strings.TrimSpace(req.FeeType),
		Amount:       req.Amount,
		DueDate:      req.DueDate.Ptr(),
		Status:       StatusPending,
		AcademicYear: req.AcademicYear,
		Remarks:      req.Remarks,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create fee", "student_id", req.StudentID, "error", err)
		return nil, internal.NewInternalError("failed to create fee", err)
	}
	s.logger.Info("fee created", "fee_id", row.ID, "student_id", row.StudentID, "amount", row.Amount)
	return FromDataModel(row), nil
}

// Pay records a payment. The fee becomes paid once the paid amount covers
// the full amount and partial before that.
func (s *Service) Pay(ctx context.Context, id int64, req PayRequest) (*Fee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	row, err := s.repo.Pay(ctx, id, Payment{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		ReceiptNumber: ReceiptNumber(now),
		PaidAt:        now,
	})
	if err != nil {
		s.logger.Error("failed to record payment", "fee_id", id, "error", err)
		return nil, internal.NewInternalError("failed to record payment", err)
	}
	if row == nil {
		return nil, internal.ErrFeeNotFound
	}
	s.logger.Info("fee payment recorded", "fee_id", id, "amount", req.Amount, "status", row.Status, "receipt", row.ReceiptNumber)
	return FromDataModel(row), nil
}

// MarkOverdue flags unpaid fees whose due date has passed. It runs from the
// scheduler.
func (s *Service) MarkOverdue(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkOverdue(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to mark overdue fees", "error", err)
		return 0, err
	}
	if n > 0 {
		s.logger.Info("fees marked overdue", "count", n)
	}
	return n, nil
}
