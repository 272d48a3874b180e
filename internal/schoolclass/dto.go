package schoolclass

import "github.com/frahmantamala/edumaster/internal/core/common/validation"

type CreateRequest struct {
	Name           string `json:"name" validate:"required,notblank"`
	Grade          int    `json:"grade" validate:"gte=0,lte=12"`
	Section        string `json:"section"`
	SessionID      *int64 `json:"session_id"`
	ClassTeacherID *int64 `json:"class_teacher_id"`
	Room           string `json:"room"`
	Capacity       int    `json:"capacity" validate:"gte=0"`
	IsActive       *bool  `json:"is_active"`
}

func (r CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type UpdateRequest struct {
	Name           *string `json:"name" validate:"omitempty,notblank"`
	Grade          *int    `json:"grade" validate:"omitempty,gte=0,lte=12"`
	Section        *string `json:"section"`
	SessionID      *int64  `json:"session_id"`
	ClassTeacherID *int64  `json:"class_teacher_id"`
	Room           *string `json:"room"`
	Capacity       *int    `json:"capacity" validate:"omitempty,gte=0"`
	IsActive       *bool   `json:"is_active"`
}

func (r UpdateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type AddStudentRequest struct {
	StudentID int64 `json:"student_id" validate:"required"`
}

type ClassesResponse struct {
	Classes []*Class `json:"classes"`
	Count   int      `json:"count"`
}
