package permission

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*userDatamodel.Permission, error)
	GetByModule(ctx context.Context, module string) ([]*userDatamodel.Permission, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.Permission, error)
	GetByIDs(ctx context.Context, ids []int64) ([]userDatamodel.Permission, error)
	Create(ctx context.Context, p *userDatamodel.Permission) error
	CreateBatch(ctx context.Context, ps []*userDatamodel.Permission) error
	Update(ctx context.Context, p *userDatamodel.Permission) error
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

func (s *Service) GetAll(ctx context.Context) ([]*Permission, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list permissions", "error", err)
		return nil, internal.NewInternalError("failed to list permissions", err)
	}
	out := make([]*Permission, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) GetByModule(ctx context.Context, module string) ([]*Permission, error) {
	rows, err := s.repo.GetByModule(ctx, module)
	if err != nil {
		s.logger.Error("failed to list permissions by module", "module", module, "error", err)
		return nil, internal.NewInternalError("failed to list permissions", err)
	}
	out := make([]*Permission, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

// ResolveIDs loads the permissions with the given ids and fails when any is unknown.
func (s *Service) ResolveIDs(ctx context.Context, ids []int64) ([]userDatamodel.Permission, error) {
	if len(ids) == 0 {
		return []userDatamodel.Permission{}, nil
	}
	rows, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, internal.NewInternalError("failed to load permissions", err)
	}
	if len(rows) != len(uniqueIDs(ids)) {
		return nil, internal.NewValidationError("One or more permissions do not exist", internal.ErrCodePermissionNotFound)
	}
	return rows, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Permission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.normalize()

	now := time.Now()
	row := &userDatamodel.Permission{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Module:      req.Module,
		Action:      req.Action,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Permission code already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to create permission", "code", req.Code, "error", err)
		return nil, internal.NewInternalError("failed to create permission", err)
	}

	s.logger.Info("permission created", "permission_id", row.ID, "code", row.Code)
	return FromDataModel(row), nil
}

func (s *Service) BulkCreate(ctx context.Context, req BulkCreateRequest) ([]*Permission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	seen := make(map[string]bool, len(req.Permissions))
	rows := make([]*userDatamodel.Permission, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		p.normalize()
		if seen[p.Code] {
			return nil, internal.NewConflictError("Duplicate permission code "+p.Code, internal.ErrCodeDuplicate)
		}
		seen[p.Code] = true
		rows = append(rows, &userDatamodel.Permission{
			Name:        p.Name,
			Code:        p.Code,
			Description: p.Description,
			Module:      p.Module,
			Action:      p.Action,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.repo.CreateBatch(ctx, rows); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Permission code already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to bulk create permissions", "count", len(rows), "error", err)
		return nil, internal.NewInternalError("failed to create permissions", err)
	}

	out := make([]*Permission, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Permission, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load permission", err)
	}
	if row == nil {
		return nil, internal.ErrPermissionNotFound
	}

	if req.Name != nil {
		row.Name = *req.Name
	}
	if req.Description != nil {
		row.Description = *req.Description
	}
	row.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update permission", "permission_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update permission", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to load permission", err)
	}
	if row == nil {
		return internal.ErrPermissionNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete permission", "permission_id", id, "error", err)
		return internal.NewInternalError("failed to delete permission", err)
	}
	s.logger.Info("permission deleted", "permission_id", id, "code", row.Code)
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
