package student

import (
	"github.com/frahmantamala/edumaster/internal/core/common/dates"
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type ListFilter struct {
	ClassID *int64
	Section string
	Status  string
	Search  string
	Limit   int
	Offset  int
}

type CreateRequest struct {
	AdmissionNumber   string      `json:"admission_number"`
	UserID            *int64      `json:"user_id"`
	FirstName         string      `json:"first_name" validate:"required,notblank"`
	LastName          string      `json:"last_name" validate:"required,notblank"`
	DateOfBirth       *dates.Date `json:"date_of_birth"`
	Gender            string      `json:"gender" validate:"omitempty,oneof=male female other"`
	Email             string      `json:"email" validate:"omitempty,email"`
	Phone             string      `json:"phone"`
	Address           string      `json:"address"`
	GuardianName      string      `json:"guardian_name"`
	GuardianPhone     string      `json:"guardian_phone"`
	CurrentSessionID  *int64      `json:"current_session_id"`
	CurrentClassID    *int64      `json:"current_class_id"`
	CurrentSection    string      `json:"current_section"`
	CurrentRollNumber int         `json:"current_roll_number" validate:"gte=0"`
}

func (r CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("date_of_birth", r.DateOfBirth.Ptr()).NotFuture()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateRequest edits the record itself. Current session, class, section and
// roll number follow the academic history and are changed by promotion only.
type UpdateRequest struct {
	AdmissionNumber *string     `json:"admission_number"`
	FirstName       *string     `json:"first_name" validate:"omitempty,notblank"`
	LastName        *string     `json:"last_name" validate:"omitempty,notblank"`
	DateOfBirth     *dates.Date `json:"date_of_birth"`
	Gender          *string     `json:"gender" validate:"omitempty,oneof=male female other"`
	Email           *string     `json:"email" validate:"omitempty,email"`
	Phone           *string     `json:"phone"`
	Address         *string     `json:"address"`
	GuardianName    *string     `json:"guardian_name"`
	GuardianPhone   *string     `json:"guardian_phone"`
	Status          *string     `json:"status"`
}

func (r UpdateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	v := validation.NewValidator()
	if r.Status != nil {
		v.Field("status", *r.Status).OneOf(Statuses...)
	}
	v.Field("date_of_birth", r.DateOfBirth.Ptr()).NotFuture()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type StudentsResponse struct {
	Students []*Student `json:"students"`
	Count    int        `json:"count"`
}
