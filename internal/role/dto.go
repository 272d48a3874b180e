package role

import (
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type CreateRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	DisplayName   string  `json:"display_name" validate:"required,max=150"`
	Description   string  `json:"description"`
	PermissionIDs []int64 `json:"permissions"`
	Icon          string  `json:"icon"`
	Color         string  `json:"color"`
	Priority      int     `json:"priority"`
	IsActive      *bool   `json:"is_active"`
}

func (r *CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

// UpdateRequest changes only the fields that are present. The system flag
// is deliberately absent: it cannot be changed through the API.
type UpdateRequest struct {
	DisplayName       *string  `json:"display_name" validate:"omitempty,notblank,max=150"`
	Description       *string  `json:"description"`
	PermissionIDs     *[]int64 `json:"permissions"`
	Icon              *string  `json:"icon"`
	Color             *string  `json:"color"`
	Priority          *int     `json:"priority"`
	IsActive          *bool    `json:"is_active"`
	AllowSystemUpdate bool     `json:"allow_system_update"`
}

func (r *UpdateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type RolesResponse struct {
	Roles []*Role `json:"roles"`
}

type ActiveRoleResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Priority    int    `json:"priority"`
}

type ActiveRolesResponse struct {
	Roles []ActiveRoleResponse `json:"roles"`
}
