package permission

import (
	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type CreateRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Module      string `json:"module" validate:"required"`
	Action      string `json:"action" validate:"required"`
}

func (r *CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("module", r.Module).Custom(func(val interface{}) *internal.AppError {
		if !IsKnownModule(val.(string)) {
			return internal.NewValidationFieldError("module", "unknown module "+val.(string), internal.ErrCodeValidationFailed)
		}
		return nil
	})
	v.Field("action", r.Action).OneOf(Actions...)
	v.Field("code", r.Code).MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// normalize fills the code and name derived from module and action.
func (r *CreateRequest) normalize() {
	if r.Code == "" {
		r.Code = Code(r.Module, r.Action)
	}
	if r.Name == "" {
		r.Name = DefaultName(r.Module, r.Action)
	}
}

type BulkCreateRequest struct {
	Permissions []CreateRequest `json:"permissions"`
}

func (r *BulkCreateRequest) Validate() error {
	if len(r.Permissions) == 0 {
		return internal.NewValidationFieldError("permissions", "permissions is required", internal.ErrCodeValidationFailed)
	}
	for i := range r.Permissions {
		if err := r.Permissions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type PermissionsResponse struct {
	Permissions []*Permission `json:"permissions"`
}
