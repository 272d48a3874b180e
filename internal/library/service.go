package library

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	libraryDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/library"
)

type RepositoryAPI interface {
	ListBooks(ctx context.Context, filter BookFilter) ([]*libraryDatamodel.Book, error)
	// CreateBook assigns the next BOOK code inside the insert transaction.
	CreateBook(ctx context.Context, b *libraryDatamodel.Book) error
	StudentExists(ctx context.Context, id int64) (bool, error)
	// Issue decrements the available count and records the loan in one
	// transaction. It returns ErrBookUnavailable when no copy is left.
	Issue(ctx context.Context, issue *libraryDatamodel.BookIssue) error
	Return(ctx context.Context, issueID int64, at time.Time) (*libraryDatamodel.BookIssue, error)
	ListIssues(ctx context.Context, filter IssueFilter) ([]*libraryDatamodel.BookIssue, error)
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

func (s *Service) ListBooks(ctx context.Context, filter BookFilter) ([]*Book, error) {
	rows, err := s.repo.ListBooks(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list books", "error", err)
		return nil, internal.NewInternalError("failed to list books", err)
	}
	out := make([]*Book, 0, len(rows))
	for _, row := range rows {
		out = append(out, BookFromDataModel(row))
	}
	return out, nil
}

func (s *Service) CreateBook(ctx context.Context, req CreateBookRequest) (*Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	row := &libraryDatamodel.Book{
		ISBN:      strings.TrimSpace(req.ISBN),
		Title:     strings.TrimSpace(req.Title),
		Author:    req.Author,
		Publisher: req.Publisher,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Available: req.Quantity,
		Location:  req.Location,
	}
	if err := s.repo.CreateBook(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Book already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to create book", "title", row.Title, "error", err)
		return nil, internal.NewInternalError("failed to create book", err)
	}
	s.logger.Info("book added", "book_id", row.BookCode, "quantity", row.Quantity)
	return BookFromDataModel(row), nil
}

func (s *Service) Issue(ctx context.Context, req IssueRequest) (*Issue, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.StudentID != nil {
		ok, err := s.repo.StudentExists(ctx, *req.StudentID)
		if err != nil {
			return nil, internal.NewInternalError("failed to load student", err)
		}
		if !ok {
			return nil, internal.ErrStudentNotFound
		}
	}

	now := s.now()
	row := &libraryDatamodel.BookIssue{
		BookID:    req.BookID,
		StudentID: req.StudentID,
		UserID:    req.UserID,
		IssueDate: now,
		DueDate:   now.Add(LoanPeriod),
		Status:    IssueIssued,
	}
	if actorID := internal.UserIDFromContext(ctx); actorID != 0 {
		row.IssuedBy = &actorID
	}

	if err := s.repo.Issue(ctx, row); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to issue book", "book_id", req.BookID, "error", err)
		return nil, internal.NewInternalError("failed to issue book", err)
	}
	s.logger.Info("book issued", "issue_id", row.ID, "book_id", row.BookID)
	return IssueFromDataModel(row), nil
}

func (s *Service) Return(ctx context.Context, issueID int64) (*Issue, error) {
	row, err := s.repo.Return(ctx, issueID, s.now())
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to return book", "issue_id", issueID, "error", err)
		return nil, internal.NewInternalError("failed to return book", err)
	}
	return IssueFromDataModel(row), nil
}

func (s *Service) ListIssues(ctx context.Context, filter IssueFilter) ([]*Issue, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListIssues(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list book issues", "error", err)
		return nil, internal.NewInternalError("failed to list book issues", err)
	}
	out := make([]*Issue, 0, len(rows))
	for _, row := range rows {
		out = append(out, IssueFromDataModel(row))
	}
	return out, nil
}

// MarkOverdue flags loans past their due date. It runs from the scheduler.
func (s *Service) MarkOverdue(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkOverdue(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to mark overdue issues", "error", err)
		return 0, err
	}
	if n > 0 {
		s.logger.Info("book issues marked overdue", "count", n)
	}
	return n, nil
}
