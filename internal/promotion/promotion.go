package promotion

import (
	"time"

	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
)

const (
	TypeBulk       = "bulk"
	TypeIndividual = "individual"
	TypeClassWise  = "class-wise"
)

const (
	RequestPending    = "pending"
	RequestInProgress = "in-progress"
	RequestCompleted  = "completed"
	RequestFailed     = "failed"
)

const (
	TransferOut = "transfer_out"
	TransferIn  = "transfer_in"
)

const (
	TransferPending   = "pending"
	TransferApproved  = "approved"
	TransferRejected  = "rejected"
	TransferCompleted = "completed"
)

const (
	RemarksLowAttendance = "Low attendance"
	RemarksBelowCriteria = "Did not meet passing criteria"
)

// Outcome is what the engine decided for one student.
type Outcome int

const (
	OutcomePromote Outcome = iota
	OutcomeDetainAttendance
	OutcomeDetainPercentage
)

// Criteria thresholds are percentages. A zero threshold is not applied.
type Criteria struct {
	MinimumAttendance float64 `json:"minimum_attendance"`
	MinimumPercentage float64 `json:"minimum_percentage"`
}

// Decide applies the attendance threshold first, then the score threshold.
func Decide(attendance, percentage float64, c Criteria) Outcome {
	if c.MinimumAttendance > 0 && attendance < c.MinimumAttendance {
		return OutcomeDetainAttendance
	}
	if c.MinimumPercentage > 0 && percentage < c.MinimumPercentage {
		return OutcomeDetainPercentage
	}
	return OutcomePromote
}

// ItemError reports a student the batch could not process.
type ItemError struct {
	StudentID int64  `json:"student_id"`
	Error     string `json:"error"`
}

type BulkResult struct {
	Total    int         `json:"total"`
	Promoted int         `json:"promoted"`
	Detained int         `json:"detained"`
	Failed   int         `json:"failed"`
	Errors   []ItemError `json:"errors"`
}

type GraduationResult struct {
	Total     int         `json:"total"`
	Graduated int         `json:"graduated"`
	Failed    int         `json:"failed"`
	Errors    []ItemError `json:"errors"`
}

// Move carries everything one promotion writes.
type Move struct {
	StudentID     int64
	FromSessionID int64
	ToSessionID   int64
	SourceClassID *int64
	TargetClassID *int64
	Section       string
	RollNumber    int
	PromotedBy    int64
	PromotedOn    time.Time
}

type Request struct {
	ID            int64     `json:"id"`
	FromSessionID int64     `json:"from_session_id"`
	ToSessionID   int64     `json:"to_session_id"`
	PromotionType string    `json:"promotion_type"`
	Criteria      Criteria  `json:"criteria"`
	SourceClassID *int64    `json:"source_class_id,omitempty"`
	TargetClassID *int64    `json:"target_class_id,omitempty"`
	Status        string    `json:"status"`
	CreatedBy     *int64    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func RequestFromDataModel(p *academicDatamodel.PromotionRequest) *Request {
	return &Request{
		ID:            p.ID,
		FromSessionID: p.FromSessionID,
		ToSessionID:   p.ToSessionID,
		PromotionType: p.PromotionType,
		Criteria: Criteria{
			MinimumAttendance: p.MinimumAttendance,
			MinimumPercentage: p.MinimumPercentage,
		},
		SourceClassID: p.SourceClassID,
		TargetClassID: p.TargetClassID,
		Status:        p.Status,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
	}
}

type TransferTo struct {
	SchoolName    string `json:"school_name"`
	SchoolAddress string `json:"school_address,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

type TCDetails struct {
	TCNumber           string     `json:"tc_number,omitempty"`
	IssueDate          *time.Time `json:"issue_date,omitempty"`
	LastAttendanceDate *time.Time `json:"last_attendance_date,omitempty"`
	Conduct            string     `json:"conduct,omitempty"`
	Remarks            string     `json:"remarks,omitempty"`
	FeesStatus         string     `json:"fees_status,omitempty"`
}

type Transfer struct {
	ID          int64      `json:"id"`
	StudentID   int64      `json:"student_id"`
	SessionID   *int64     `json:"session_id,omitempty"`
	RequestType string     `json:"request_type"`
	TransferTo  TransferTo `json:"transfer_to"`
	TCDetails   TCDetails  `json:"tc_details"`
	Status      string     `json:"status"`
	RequestedBy *int64     `json:"requested_by,omitempty"`
	ApprovedBy  *int64     `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	Remarks     string     `json:"remarks,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func TransferFromDataModel(t *academicDatamodel.TransferRequest) *Transfer {
	return &Transfer{
		ID:          t.ID,
		StudentID:   t.StudentID,
		SessionID:   t.SessionID,
		RequestType: t.RequestType,
		TransferTo: TransferTo{
			SchoolName:    t.TransferTo.SchoolName,
			SchoolAddress: t.TransferTo.SchoolAddress,
			City:          t.TransferTo.City,
			State:         t.TransferTo.State,
			Reason:        t.TransferTo.Reason,
		},
		TCDetails: TCDetails{
			TCNumber:           t.TCDetails.TCNumber,
			IssueDate:          t.TCDetails.IssueDate,
			LastAttendanceDate: t.TCDetails.LastAttendanceDate,
			Conduct:            t.TCDetails.Conduct,
			Remarks:            t.TCDetails.Remarks,
			FeesStatus:         t.TCDetails.FeesStatus,
		},
		Status:      t.Status,
		RequestedBy: t.RequestedBy,
		ApprovedBy:  t.ApprovedBy,
		ApprovedAt:  t.ApprovedAt,
		Remarks:     t.Remarks,
		CreatedAt:   t.CreatedAt,
	}
}

type CertificateStudent struct {
	Name            string     `json:"name"`
	AdmissionNumber string     `json:"admission_number,omitempty"`
	ClassID         *int64     `json:"class_id,omitempty"`
	DateOfBirth     *time.Time `json:"dob,omitempty"`
}

// Certificate is the transfer certificate of an approved transfer.
type Certificate struct {
	TCNumber       string             `json:"tc_number"`
	IssueDate      *time.Time         `json:"issue_date,omitempty"`
	Student        CertificateStudent `json:"student"`
	Session        string             `json:"session,omitempty"`
	LastAttendance *time.Time         `json:"last_attendance,omitempty"`
	Conduct        string             `json:"conduct,omitempty"`
	FeesStatus     string             `json:"fees_status,omitempty"`
	Remarks        string             `json:"remarks,omitempty"`
	TransferTo     string             `json:"transfer_to,omitempty"`
}
