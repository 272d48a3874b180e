package message

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	messageDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/message"
)

type RepositoryAPI interface {
	// ListFor returns messages the user sent or received, newest first.
	ListFor(ctx context.Context, userID int64, filter ListFilter) ([]*messageDatamodel.Message, error)
	GetByID(ctx context.Context, id int64) (*messageDatamodel.Message, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, m *messageDatamodel.Message) error
	MarkRead(ctx context.Context, id int64, at time.Time) error
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Message, error) {
	userID := internal.UserIDFromContext(ctx)
	if userID == 0 {
		return nil, internal.ErrNotAuthenticated
	}
	rows, err := s.repo.ListFor(ctx, userID, filter)
	if err != nil {
		s.logger.Error("failed to list messages", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list messages", err)
	}
	out := make([]*Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Send(ctx context.Context, req CreateRequest) (*Message, error) {
	senderID := internal.UserIDFromContext(ctx)
	if senderID == 0 {
		return nil, internal.ErrNotAuthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ok, err := s.repo.UserExists(ctx, req.RecipientID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load recipient", err)
	}
	if !ok {
		return nil, internal.ErrUserNotFound
	}

	row := &messageDatamodel.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Subject:     strings.TrimSpace(req.Subject),
		Body:        req.Body,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to send message", "sender_id", senderID, "error", err)
		return nil, internal.NewInternalError("failed to send message", err)
	}
	return FromDataModel(row), nil
}

// MarkRead is only allowed for the recipient. Reading an already read
// message keeps the first read time.
func (s *Service) MarkRead(ctx context.Context, id int64) (*Message, error) {
	userID := internal.UserIDFromContext(ctx)
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load message", err)
	}
	if row == nil {
		return nil, internal.ErrMessageNotFound
	}
	if row.RecipientID != userID {
		return nil, internal.ErrAccessDenied
	}
	if row.IsRead {
		return FromDataModel(row), nil
	}

	at := s.now()
	if err := s.repo.MarkRead(ctx, id, at); err != nil {
		s.logger.Error("failed to mark message read", "message_id", id, "error", err)
		return nil, internal.NewInternalError("failed to mark message read", err)
	}
	row.IsRead = true
	row.ReadAt = &at
	return FromDataModel(row), nil
}
