package teacher

import (
	"github.com/frahmantamala/edumaster/internal/core/common/dates"
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type ListFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

type CreateRequest struct {
	UserID         *int64      `json:"user_id"`
	FirstName      string      `json:"first_name" validate:"required,notblank"`
	LastName       string      `json:"last_name" validate:"required,notblank"`
	Email          string      `json:"email" validate:"omitempty,email"`
	Phone          string      `json:"phone"`
	Qualification  string      `json:"qualification"`
	Specialization string      `json:"specialization"`
	JoiningDate    *dates.Date `json:"joining_date"`
	Salary         float64     `json:"salary" validate:"gte=0"`
	Status         string      `json:"status" validate:"omitempty,oneof=active inactive on_leave"`
}

func (r CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type UpdateRequest struct {
	FirstName      *string     `json:"first_name" validate:"omitempty,notblank"`
	LastName       *string     `json:"last_name" validate:"omitempty,notblank"`
	Email          *string     `json:"email" validate:"omitempty,email"`
	Phone          *string     `json:"phone"`
	Qualification  *string     `json:"qualification"`
	Specialization *string     `json:"specialization"`
	JoiningDate    *dates.Date `json:"joining_date"`
	Salary         *float64    `json:"salary" validate:"omitempty,gte=0"`
	Status         *string     `json:"status" validate:"omitempty,oneof=active inactive on_leave"`
}

func (r UpdateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type TeachersResponse struct {
	Teachers []*Teacher `json:"teachers"`
	Count    int        `json:"count"`
}
