package fee

import (
	"github.com/frahmantamala/edumaster/internal/core/common/dates"
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type CreateRequest struct {
	StudentID    int64       `json:"student_id" validate:"required"`
	FeeType      string      `json:"fee_type" validate:"required,notblank"`
	Amount       float64     `json:"amount" validate:"gt=0"`
	DueDate      *dates.Date `json:"due_date"`
	AcademicYear string      `json:"academic_year"`
	Remarks      string      `json:"remarks"`
}

func (r CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type PayRequest struct {
	Amount        float64 `json:"amount" validate:"gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash card bank_transfer upi cheque online"`
	TransactionID string  `json:"transaction_id"`
}

func (r PayRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type ListFilter struct {
	StudentID    *int64
	Status       string
	AcademicYear string
	Limit        int
	Offset       int
}

func (f ListFilter) Validate() error {
	v := validation.NewValidator()
	if f.Status != "" {
		v.Field("status", f.Status).OneOf(Statuses...)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type FeesResponse struct {
	Fees  []*Fee `json:"fees"`
	Count int    `json:"count"`
}
