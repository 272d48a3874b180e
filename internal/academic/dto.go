package academic

import (
	"encoding/json"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/core/common/dates"
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type CreateSessionRequest struct {
	SessionName string      `json:"session_name" validate:"required,notblank"`
	StartDate   *dates.Date `json:"start_date" validate:"required"`
	EndDate     *dates.Date `json:"end_date" validate:"required"`
	Status      string      `json:"status" validate:"omitempty,oneof=upcoming active completed archived"`
	Description string      `json:"description"`
}

func (r CreateSessionRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("end_date", r.EndDate.Time).After(r.StartDate.Time, "start_date")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateSessionRequest struct {
	SessionName *string     `json:"session_name" validate:"omitempty,notblank"`
	StartDate   *dates.Date `json:"start_date"`
	EndDate     *dates.Date `json:"end_date"`
	Status      *string     `json:"status" validate:"omitempty,oneof=upcoming active completed archived"`
	Description *string     `json:"description"`
	IsActive    *bool       `json:"is_active"`
}

func (r UpdateSessionRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type SessionsResponse struct {
	Sessions []*Session `json:"sessions"`
	Count    int        `json:"count"`
}

// CreateHistoryRequest opens a history record for a student in a session.
type CreateHistoryRequest struct {
	SessionID   int64             `json:"session_id" validate:"required"`
	ClassID     *int64            `json:"class_id"`
	Section     string            `json:"section"`
	RollNumber  int               `json:"roll_number" validate:"gte=0"`
	Attendance  AttendanceSummary `json:"attendance"`
	Performance Performance       `json:"performance"`
	FeesData    json.RawMessage   `json:"fees_data"`
	Remarks     string            `json:"remarks"`
	Conduct     string            `json:"conduct"`
}

func (r CreateHistoryRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("attendance.percentage", r.Attendance.Percentage).
		MinFloat(0, internal.ErrCodeValidationFailed).
		MaxFloat(100, internal.ErrCodeValidationFailed)
	v.Field("performance.percentage", r.Performance.Percentage).
		MinFloat(0, internal.ErrCodeValidationFailed).
		MaxFloat(100, internal.ErrCodeValidationFailed)
	if err := v.Validate(); err != nil {
		return err
	}
	if len(r.FeesData) > 0 && !json.Valid(r.FeesData) {
		return internal.NewValidationFieldError("fees_data", "fees_data must be valid JSON", internal.ErrCodeValidationFailed)
	}
	return nil
}

type HistoryResponse struct {
	History []*History `json:"history"`
	Count   int        `json:"count"`
}
