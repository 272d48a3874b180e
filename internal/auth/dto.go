package auth

import (
	"time"

	"github.com/frahmantamala/edumaster/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/permission"
	"github.com/frahmantamala/edumaster/internal/role"
)

// LoginRequest accepts an email, employee id, student id or custom id as identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RoleID     *int64 `json:"role_id"`
}

func (d LoginRequest) Validate() error {
	if err := validation.ValidateStruct(d); err != nil {
		return err
	}
	return nil
}

type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	RoleID     int64  `json:"role_id" validate:"required"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Phone      string `json:"phone"`
	EmployeeID string `json:"employee_id"`
	StudentID  string `json:"student_id"`
	CustomID   string `json:"custom_id"`
}

func (d RegisterRequest) Validate() error {
	if err := validation.ValidateStruct(d); err != nil {
		return err
	}
	return nil
}

type CheckPermissionRequest struct {
	Permission string `json:"permission"`
}

type CheckPermissionResponse struct {
	HasPermission bool   `json:"has_permission"`
	Permission    string `json:"permission"`
}

// Account is the user as shown to itself.
type Account struct {
	ID                    int64                    `json:"id"`
	Email                 string                   `json:"email"`
	FirstName             string                   `json:"first_name"`
	LastName              string                   `json:"last_name"`
	Phone                 string                   `json:"phone,omitempty"`
	EmployeeID            *string                  `json:"employee_id,omitempty"`
	StudentID             *string                  `json:"student_id,omitempty"`
	CustomID              *string                  `json:"custom_id,omitempty"`
	IsActive              bool                     `json:"is_active"`
	LastLogin             *time.Time               `json:"last_login,omitempty"`
	Role                  *role.Role               `json:"role,omitempty"`
	AdditionalPermissions []*permission.Permission `json:"additional_permissions"`
}

type AuthResponse struct {
	User  Account    `json:"user"`
	Token string     `json:"token"`
	Role  *role.Role `json:"role"`
}

type MeResponse struct {
	Account
	EffectivePermissions []string `json:"effective_permissions"`
}

func toAccount(u *userDatamodel.User) Account {
	acc := Account{
		ID:                    u.ID,
		Email:                 u.Email,
		FirstName:             u.FirstName,
		LastName:              u.LastName,
		Phone:                 u.Phone,
		EmployeeID:            u.EmployeeID,
		StudentID:             u.StudentCode,
		CustomID:              u.CustomID,
		IsActive:              u.IsActive,
		LastLogin:             u.LastLogin,
		AdditionalPermissions: permission.FromDataModels(u.AdditionalPermissions),
	}
	if u.Role != nil {
		acc.Role = role.FromDataModel(u.Role)
	}
	return acc
}

// effectiveSet unions role grants with the user's additional grants.
func effectiveSet(u *userDatamodel.User) permission.Set {
	var roleCodes []string
	if u.Role != nil {
		roleCodes = permission.CodesOf(u.Role.Permissions)
	}
	return permission.NewSet(roleCodes, permission.CodesOf(u.AdditionalPermissions))
}
