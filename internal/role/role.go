package role

import (
	"time"

	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/permission"
)

// Built-in role names created by the seeder.
const (
	NameSuperAdmin = "super_admin"
	NameAdmin      = "admin"
	NameTeacher    = "teacher"
	NameStudent    = "student"
	NameAccountant = "accountant"
	NameLibrarian  = "librarian"
)

type Role struct {
	ID          int64                    `json:"id"`
	Name        string                   `json:"name"`
	DisplayName string                   `json:"display_name"`
	Description string                   `json:"description"`
	Permissions []*permission.Permission `json:"permissions"`
	IsSystem    bool                     `json:"is_system"`
	IsActive    bool                     `json:"is_active"`
	Icon        string                   `json:"icon"`
	Color       string                   `json:"color"`
	Priority    int                      `json:"priority"`
	CreatedBy   *int64                   `json:"created_by,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// PermissionCodes returns the codes granted by the role.
func (r *Role) PermissionCodes() []string {
	codes := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		codes = append(codes, p.Code)
	}
	return codes
}

func (r *Role) ToActiveResponse() ActiveRoleResponse {
	return ActiveRoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		Icon:        r.Icon,
		Color:       r.Color,
		Priority:    r.Priority,
	}
}

func FromDataModel(r *userDatamodel.Role) *Role {
	return &Role{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		Permissions: permission.FromDataModels(r.Permissions),
		IsSystem:    r.IsSystem,
		IsActive:    r.IsActive,
		Icon:        r.Icon,
		Color:       r.Color,
		Priority:    r.Priority,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
