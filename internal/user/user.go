package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/permission"
	"github.com/frahmantamala/edumaster/internal/role"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User is a managed account. The password hash never leaves the service.
type User struct {
	ID                    int64                    `json:"id"`
	Email                 string                   `json:"email"`
	FirstName             string                   `json:"first_name"`
	LastName              string                   `json:"last_name"`
	Phone                 string                   `json:"phone,omitempty"`
	EmployeeID            *string                  `json:"employee_id,omitempty"`
	StudentID             *string                  `json:"student_id,omitempty"`
	CustomID              *string                  `json:"custom_id,omitempty"`
	RoleID                int64                    `json:"role_id"`
	Role                  *role.Role               `json:"role,omitempty"`
	AdditionalPermissions []*permission.Permission `json:"additional_permissions"`
	IsActive              bool                     `json:"is_active"`
	LastLogin             *time.Time               `json:"last_login,omitempty"`
	CreatedAt             time.Time                `json:"created_at"`
	UpdatedAt             time.Time                `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func FromDataModel(u *userDatamodel.User) *User {
	out := &User{
		ID:                    u.ID,
		Email:                 u.Email,
		FirstName:             u.FirstName,
		LastName:              u.LastName,
		Phone:                 u.Phone,
		EmployeeID:            u.EmployeeID,
		StudentID:             u.StudentCode,
		CustomID:              u.CustomID,
		RoleID:                u.RoleID,
		AdditionalPermissions: permission.FromDataModels(u.AdditionalPermissions),
		IsActive:              u.IsActive,
		LastLogin:             u.LastLogin,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
	if u.Role != nil {
		out.Role = role.FromDataModel(u.Role)
	}
	return out
}
