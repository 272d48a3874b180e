package audit

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/edumaster/internal"
	auditDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/audit"
)

type RepositoryAPI interface {
	Create(ctx context.Context, a *auditDatamodel.ActivityLog) error
	// List returns the newest entries first.
	List(ctx context.Context, filter ListFilter) ([]*auditDatamodel.ActivityLog, error)
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Activity, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list activity", "error", err)
		return nil, internal.NewInternalError("failed to list activity", err)
	}
	out := make([]*Activity, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}
