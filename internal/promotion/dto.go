package promotion

import (
	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/core/common/dates"
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type StudentScore struct {
	StudentID            int64   `json:"student_id" validate:"required"`
	AttendancePercentage float64 `json:"attendance_percentage" validate:"gte=0,lte=100"`
	Percentage           float64 `json:"percentage" validate:"gte=0,lte=100"`
	Section              string  `json:"section"`
	RollNumber           int     `json:"roll_number" validate:"gte=0"`
}

type BulkRequest struct {
	FromSessionID int64          `json:"from_session_id" validate:"required"`
	ToSessionID   int64          `json:"to_session_id" validate:"required"`
	SourceClassID *int64         `json:"source_class_id"`
	TargetClassID *int64         `json:"target_class_id"`
	Students      []StudentScore `json:"students" validate:"required,min=1,dive"`
	Criteria      Criteria       `json:"criteria"`
}

func (r BulkRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	if err := validateCriteria(r.Criteria); err != nil {
		return err
	}
	return validateSessions(r.FromSessionID, r.ToSessionID)
}

type SingleRequest struct {
	StudentID     int64  `json:"student_id" validate:"required"`
	FromSessionID int64  `json:"from_session_id" validate:"required"`
	ToSessionID   int64  `json:"to_session_id" validate:"required"`
	ToClassID     *int64 `json:"to_class_id"`
	Section       string `json:"section"`
	RollNumber    int    `json:"roll_number" validate:"gte=0"`
}

func (r SingleRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return validateSessions(r.FromSessionID, r.ToSessionID)
}

type GraduateRequest struct {
	StudentIDs []int64 `json:"student_ids" validate:"required,min=1,dive,gt=0"`
	SessionID  int64   `json:"session_id" validate:"required"`
}

func (r GraduateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type CreateRequest struct {
	FromSessionID int64    `json:"from_session_id" validate:"required"`
	ToSessionID   int64    `json:"to_session_id" validate:"required"`
	PromotionType string   `json:"promotion_type" validate:"required,oneof=bulk individual class-wise"`
	Criteria      Criteria `json:"criteria"`
	SourceClassID *int64   `json:"source_class_id"`
	TargetClassID *int64   `json:"target_class_id"`
}

func (r CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	if err := validateCriteria(r.Criteria); err != nil {
		return err
	}
	return validateSessions(r.FromSessionID, r.ToSessionID)
}

type ListFilter struct {
	SessionID *int64
	Status    string
	Limit     int
	Offset    int
}

func (f ListFilter) Validate() error {
	v := validation.NewValidator()
	if f.Status != "" {
		v.Field("status", f.Status).OneOf(RequestPending, RequestInProgress, RequestCompleted, RequestFailed)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type RequestsResponse struct {
	Promotions []*Request `json:"promotions"`
	Count      int        `json:"count"`
}

type TransferToRequest struct {
	SchoolName    string `json:"school_name"`
	SchoolAddress string `json:"school_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Reason        string `json:"reason"`
}

type TCDetailsRequest struct {
	LastAttendanceDate *dates.Date `json:"last_attendance_date"`
	Conduct            string      `json:"conduct"`
	Remarks            string      `json:"remarks"`
	FeesStatus         string      `json:"fees_status" validate:"omitempty,oneof=paid pending waived"`
}

type CreateTransferRequest struct {
	StudentID   int64             `json:"student_id" validate:"required"`
	SessionID   *int64            `json:"session_id"`
	RequestType string            `json:"request_type" validate:"required,oneof=transfer_out transfer_in"`
	TransferTo  TransferToRequest `json:"transfer_to"`
	TCDetails   TCDetailsRequest  `json:"tc_details"`
	Remarks     string            `json:"remarks"`
}

func (r CreateTransferRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	v := validation.NewValidator()
	if r.RequestType == TransferOut {
		v.Field("transfer_to.school_name", r.TransferTo.SchoolName).Required()
	}
	v.Field("tc_details.last_attendance_date", r.TCDetails.LastAttendanceDate.Ptr()).NotFuture()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type TransferFilter struct {
	Status      string
	RequestType string
	Limit       int
	Offset      int
}

func (f TransferFilter) Validate() error {
	v := validation.NewValidator()
	if f.Status != "" {
		v.Field("status", f.Status).OneOf(TransferPending, TransferApproved, TransferRejected, TransferCompleted)
	}
	if f.RequestType != "" {
		v.Field("type", f.RequestType).OneOf(TransferOut, TransferIn)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type TransfersResponse struct {
	Transfers []*Transfer `json:"transfers"`
	Count     int         `json:"count"`
}

type ApproveResponse struct {
	Message  string    `json:"message"`
	Transfer *Transfer `json:"transfer"`
	TCNumber string    `json:"tc_number"`
}

type SingleResponse struct {
	Message   string `json:"message"`
	StudentID int64  `json:"student_id"`
}

func validateCriteria(c Criteria) error {
	v := validation.NewValidator()
	v.Field("criteria.minimum_attendance", c.MinimumAttendance).
		MinFloat(0, internal.ErrCodeValidationFailed).
		MaxFloat(100, internal.ErrCodeValidationFailed)
	v.Field("criteria.minimum_percentage", c.MinimumPercentage).
		MinFloat(0, internal.ErrCodeValidationFailed).
		MaxFloat(100, internal.ErrCodeValidationFailed)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func validateSessions(from, to int64) error {
	if from == to {
		return internal.NewValidationFieldError("to_session_id", "to_session_id must differ from from_session_id", internal.ErrCodeValidationFailed)
	}
	return nil
}
