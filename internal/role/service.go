package role

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/core/events"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*userDatamodel.Role, error)
	GetActive(ctx context.Context) ([]*userDatamodel.Role, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.Role, error)
	GetByName(ctx context.Context, name string) (*userDatamodel.Role, error)
	Create(ctx context.Context, role *userDatamodel.Role) error
	// Update saves scalar fields; a nil permissions slice leaves the grants untouched.
	Update(ctx context.Context, role *userDatamodel.Role, permissions []userDatamodel.Permission) error
	// DeleteUnused removes the role unless users still reference it, in which
	// case it returns the number of such users and deletes nothing.
	DeleteUnused(ctx context.Context, id int64) (int64, error)
}

// PermissionResolver turns permission ids into rows, failing on unknown ids.
type PermissionResolver interface {
	ResolveIDs(ctx context.Context, ids []int64) ([]userDatamodel.Permission, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo        RepositoryAPI
	permissions PermissionResolver
	publisher   EventPublisher
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, permissions PermissionResolver, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		permissions: permissions,
		publisher:   publisher,
		logger:      logger,
	}
}

func (s *Service) GetAll(ctx context.Context) ([]*Role, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list roles", "error", err)
		return nil, internal.NewInternalError("failed to list roles", err)
	}
	out := make([]*Role, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) GetActive(ctx context.Context) ([]ActiveRoleResponse, error) {
	rows, err := s.repo.GetActive(ctx)
	if err != nil {
		s.logger.Error("failed to list active roles", "error", err)
		return nil, internal.NewInternalError("failed to list roles", err)
	}
	out := make([]ActiveRoleResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row).ToActiveResponse())
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Role, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if row == nil {
		return nil, internal.ErrRoleNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Role, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	perms, err := s.permissions.ResolveIDs(ctx, req.PermissionIDs)
	if err != nil {
		return nil, err
	}

	actorID := internal.UserIDFromContext(ctx)
	now := time.Now()
	row := &userDatamodel.Role{
		Name:        strings.TrimSpace(req.Name),
		DisplayName: req.DisplayName,
		Description: req.Description,
		Permissions: perms,
		IsSystem:    false,
		IsActive:    req.IsActive == nil || *req.IsActive,
		Icon:        req.Icon,
		Color:       req.Color,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if actorID != 0 {
		row.CreatedBy = &actorID
	}

	if err := s.repo.Create(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Role name already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to create role", "name", row.Name, "error", err)
		return nil, internal.NewInternalError("failed to create role", err)
	}

	s.logger.Info("role created", "role_id", row.ID, "name", row.Name, "actor_id", actorID)
	s.publish(ctx, events.NewRoleChangedEvent(row.ID, "created", actorID))
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Role, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if row == nil {
		return nil, internal.ErrRoleNotFound
	}
	if row.IsSystem && !req.AllowSystemUpdate {
		s.logger.Warn("rejected update of system role", "role_id", id)
		return nil, internal.ErrSystemRoleUpdate
	}

	var perms []userDatamodel.Permission
	if req.PermissionIDs != nil {
		perms, err = s.permissions.ResolveIDs(ctx, *req.PermissionIDs)
		if err != nil {
			return nil, err
		}
		row.Permissions = perms
	}

	if req.DisplayName != nil {
		row.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		row.Description = *req.Description
	}
	if req.Icon != nil {
		row.Icon = *req.Icon
	}
	if req.Color != nil {
		row.Color = *req.Color
	}
	if req.Priority != nil {
		row.Priority = *req.Priority
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}
	row.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, row, perms); err != nil {
		s.logger.Error("failed to update role", "role_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update role", err)
	}

	s.publish(ctx, events.NewRoleChangedEvent(row.ID, "updated", internal.UserIDFromContext(ctx)))
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to load role", err)
	}
	if row == nil {
		return internal.ErrRoleNotFound
	}
	if row.IsSystem {
		return internal.ErrSystemRoleDelete
	}

	inUse, err := s.repo.DeleteUnused(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete role", "role_id", id, "error", err)
		return internal.NewInternalError("failed to delete role", err)
	}
	if inUse > 0 {
		return internal.NewRoleInUseError(inUse)
	}

	s.logger.Info("role deleted", "role_id", id, "name", row.Name)
	s.publish(ctx, events.NewRoleChangedEvent(id, "deleted", internal.UserIDFromContext(ctx)))
	return nil
}

// Duplicate copies a role's grants and presentation into a new non-system role
// named "<name>_copy".
func (s *Service) Duplicate(ctx context.Context, id int64) (*Role, error) {
	src, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if src == nil {
		return nil, internal.ErrRoleNotFound
	}

	actorID := internal.UserIDFromContext(ctx)
	now := time.Now()
	perms := make([]userDatamodel.Permission, len(src.Permissions))
	copy(perms, src.Permissions)

	row := &userDatamodel.Role{
		Name:        src.Name + "_copy",
		DisplayName: src.DisplayName + " (Copy)",
		Description: src.Description,
		Permissions: perms,
		IsSystem:    false,
		IsActive:    true,
		Icon:        src.Icon,
		Color:       src.Color,
		Priority:    src.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if actorID != 0 {
		row.CreatedBy = &actorID
	}

	if err := s.repo.Create(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Role name already exists", internal.ErrCodeDuplicate)
		}
		return nil, internal.NewInternalError("failed to duplicate role", err)
	}

	s.publish(ctx, events.NewRoleChangedEvent(row.ID, "duplicated", actorID))
	return FromDataModel(row), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("failed to publish role event", "event_type", event.EventType(), "error", err)
	}
}
