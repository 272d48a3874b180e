package attendance

import (
	"time"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/core/common/dates"
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type CreateRequest struct {
	StudentID int64       `json:"student_id" validate:"required"`
	ClassID   *int64      `json:"class_id"`
	Date      *dates.Date `json:"date" validate:"required"`
	Status    string      `json:"status" validate:"required,oneof=present absent late half-day"`
	Remarks   string      `json:"remarks"`
}

func (r CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("date", r.Date.Ptr()).NotFuture()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ListFilter applies the date range only when both ends are set.
type ListFilter struct {
	StudentID *int64
	ClassID   *int64
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

func (f ListFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return internal.NewValidationFieldError("endDate", "endDate must not be before startDate", internal.ErrCodeInvalidDate)
	}
	return nil
}

type AttendanceResponse struct {
	Attendance []*Record `json:"attendance"`
	Count      int       `json:"count"`
}
