package user

import (
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

// ListFilter narrows the user list. Zero values mean no filter.
type ListFilter struct {
	RoleID *int64
	Status string
	Search string
	Limit  int
	Offset int
}

func (f ListFilter) Validate() error {
	v := validation.NewValidator()
	v.Field("status", f.Status).OneOf(StatusActive, StatusInactive)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type CreateRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	FirstName  string `json:"first_name" validate:"required,notblank"`
	LastName   string `json:"last_name" validate:"required,notblank"`
	Phone      string `json:"phone"`
	EmployeeID string `json:"employee_id"`
	StudentID  string `json:"student_id"`
	CustomID   string `json:"custom_id"`
	RoleID     int64  `json:"role_id" validate:"required"`
	IsActive   *bool  `json:"is_active"`
}

func (r CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

// UpdateRequest changes only the fields that are present.
type UpdateRequest struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	Password   *string `json:"password" validate:"omitempty,min=6"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	EmployeeID *string `json:"employee_id"`
	StudentID  *string `json:"student_id"`
	CustomID   *string `json:"custom_id"`
	RoleID     *int64  `json:"role_id"`
	IsActive   *bool   `json:"is_active"`
}

func (r UpdateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type SetPermissionsRequest struct {
	PermissionIDs []int64 `json:"permissions"`
}

type UsersResponse struct {
	Users []*User `json:"users"`
	Count int     `json:"count"`
}
