package user

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/auth"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	RoleExists(ctx context.Context, roleID int64) (bool, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Update(ctx context.Context, u *userDatamodel.User) error
	Delete(ctx context.Context, id int64) error
	ReplacePermissions(ctx context.Context, id int64, perms []userDatamodel.Permission) error
}

// PermissionResolver turns permission ids into rows, failing on unknown ids.
type PermissionResolver interface {
	ResolveIDs(ctx context.Context, ids []int64) ([]userDatamodel.Permission, error)
}

type Service struct {
	repo        RepositoryAPI
	permissions PermissionResolver
	bcryptCost  int
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, permissions PermissionResolver, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		permissions: permissions,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.Search = strings.TrimSpace(filter.Search)

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	out := make([]*User, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureRole(ctx, req.RoleID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        req.Phone,
		EmployeeID:   optional(req.EmployeeID),
		StudentCode:  optional(req.StudentID),
		CustomID:     optional(req.CustomID),
		RoleID:       req.RoleID,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("User already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to create user", "email", row.Email, "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", row.ID, "role_id", row.RoleID, "actor_id", internal.UserIDFromContext(ctx))
	return s.GetByID(ctx, row.ID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoleID != nil && *req.RoleID != row.RoleID {
		if err := s.ensureRole(ctx, *req.RoleID); err != nil {
			return nil, err
		}
		row.RoleID = *req.RoleID
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password, s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		row.PasswordHash = hash
	}
	if req.Email != nil {
		row.Email = normalizeEmail(*req.Email)
	}
	if req.FirstName != nil {
		row.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		row.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		row.Phone = *req.Phone
	}
	if req.EmployeeID != nil {
		row.EmployeeID = optional(*req.EmployeeID)
	}
	if req.StudentID != nil {
		row.StudentCode = optional(*req.StudentID)
	}
	if req.CustomID != nil {
		row.CustomID = optional(*req.CustomID)
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}
	row.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, row); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("User already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return internal.NewInternalError("failed to delete user", err)
	}
	s.logger.Info("user deleted", "user_id", id, "actor_id", internal.UserIDFromContext(ctx))
	return nil
}

// SetPermissions replaces the user's additional grants.
func (s *Service) SetPermissions(ctx context.Context, id int64, req SetPermissionsRequest) (*User, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	perms, err := s.permissions.ResolveIDs(ctx, req.PermissionIDs)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplacePermissions(ctx, id, perms); err != nil {
		s.logger.Error("failed to set user permissions", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update permissions", err)
	}
	return s.GetByID(ctx, id)
}

func (s *Service) load(ctx context.Context, id int64) (*userDatamodel.User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}
	return row, nil
}

func (s *Service) ensureRole(ctx context.Context, roleID int64) error {
	ok, err := s.repo.RoleExists(ctx, roleID)
	if err != nil {
		return internal.NewInternalError("failed to load role", err)
	}
	if !ok {
		return internal.ErrInvalidRole
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
