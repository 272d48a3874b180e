package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/permission"
)

type RepositoryAPI interface {
	// FindActiveByIdentifier matches email, employee id, student id or custom id.
	FindActiveByIdentifier(ctx context.Context, identifier string) (*userDatamodel.User, error)
	// GetWithGrants loads the user with its role, role permissions and additional permissions.
	GetWithGrants(ctx context.Context, id int64) (*userDatamodel.User, error)
	// GetRoleByID loads the role with its permissions.
	GetRoleByID(ctx context.Context, id int64) (*userDatamodel.Role, error)
	CreateUser(ctx context.Context, u *userDatamodel.User) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type TokenGeneratorAPI interface {
	GenerateToken(userID, roleID int64, roleName string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Service is the main auth service with dependencies
type Service struct {
	repo       RepositoryAPI
	tokens     TokenGeneratorAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindActiveByIdentifier(ctx, strings.TrimSpace(req.Identifier))
	if err != nil {
		s.logger.Error("login lookup failed", "error", err)
		return nil, internal.NewInternalError("login failed", err)
	}
	if u == nil {
		return nil, internal.ErrInvalidCredentials
	}
	if req.RoleID != nil && *req.RoleID != u.RoleID {
		s.logger.Warn("login with mismatched role", "user_id", u.ID, "requested_role", *req.RoleID)
		return nil, internal.ErrRoleMismatch
	}
	if err := VerifyPassword(u.PasswordHash, req.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}
	if u.Role == nil {
		return nil, internal.ErrInvalidRole
	}

	now := time.Now()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		s.logger.Warn("failed to store last login", "user_id", u.ID, "error", err)
	}
	u.LastLogin = &now

	return s.issue(u)
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rl, err := s.repo.GetRoleByID(ctx, req.RoleID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if rl == nil {
		return nil, internal.ErrInvalidRole
	}
	if permission.NewSet(permission.CodesOf(rl.Permissions)).GrantsAccessControl() {
		s.logger.Warn("registration into privileged role refused", "role", rl.Name, "email", req.Email)
		return nil, internal.ErrRoleNotSelfService
	}

	hash, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	u := &userDatamodel.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		EmployeeID:   optional(req.EmployeeID),
		StudentCode:  optional(req.StudentID),
		CustomID:     optional(req.CustomID),
		RoleID:       rl.ID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("User already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to register user", "email", u.Email, "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}
	u.Role = rl

	s.logger.Info("user registered", "user_id", u.ID, "role", rl.Name)
	return s.issue(u)
}

func (s *Service) issue(u *userDatamodel.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateToken(u.ID, u.Role.ID, u.Role.Name)
	if err != nil {
		return nil, internal.NewInternalError("failed to generate token", err)
	}
	acc := toAccount(u)
	return &AuthResponse{User: acc, Token: token, Role: acc.Role}, nil
}

// Authenticate turns a bearer token into a principal. Every failure,
// including store errors, is reported as not authenticated.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, internal.ErrNotAuthenticated
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, internal.ErrNotAuthenticated.WithCause(err)
	}

	u, err := s.repo.GetWithGrants(ctx, claims.UserID)
	if err != nil {
		s.logger.Error("failed to resolve principal", "user_id", claims.UserID, "error", err)
		return nil, internal.ErrNotAuthenticated.WithCause(err)
	}
	if u == nil || !u.IsActive || u.Role == nil {
		return nil, internal.ErrNotAuthenticated
	}

	return &User{
		ID:          u.ID,
		Email:       u.Email,
		RoleID:      u.Role.ID,
		RoleName:    u.Role.Name,
		Permissions: effectiveSet(u),
	}, nil
}

// Me returns the caller's account together with the codes already resolved
// for this request.
func (s *Service) Me(ctx context.Context, principal *User) (*MeResponse, error) {
	u, err := s.repo.GetWithGrants(ctx, principal.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return &MeResponse{
		Account:              toAccount(u),
		EffectivePermissions: principal.Permissions.Codes(),
	}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
