package academic

import (
	"encoding/json"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
)

// History statuses. Only HistoryActive may change; every other status is final
// for its session.
const (
	HistoryActive      = "active"
	HistoryPromoted    = "promoted"
	HistoryDetained    = "detained"
	HistoryTransferred = "transferred"
	HistoryGraduated   = "graduated"
	HistoryLeft        = "left"
)

var HistoryStatuses = []string{HistoryActive, HistoryPromoted, HistoryDetained, HistoryTransferred, HistoryGraduated, HistoryLeft}

// CanTransition reports whether a history record may move from one status to
// another.
func CanTransition(from, to string) bool {
	if from != HistoryActive {
		return false
	}
	switch to {
	case HistoryPromoted, HistoryDetained, HistoryTransferred, HistoryGraduated, HistoryLeft:
		return true
	}
	return false
}

// Transition moves a record to a final status or returns ErrHistoryNotActive.
func Transition(h *academicDatamodel.History, to string) error {
	if !CanTransition(h.SessionStatus, to) {
		return internal.ErrHistoryNotActive
	}
	h.SessionStatus = to
	return nil
}

type AttendanceSummary struct {
	TotalDays   int     `json:"total_days"`
	PresentDays int     `json:"present_days"`
	Percentage  float64 `json:"percentage"`
}

type Performance struct {
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade,omitempty"`
	Status     string  `json:"status,omitempty"`
}

type PromotedTo struct {
	SessionID  *int64     `json:"session_id,omitempty"`
	ClassID    *int64     `json:"class_id,omitempty"`
	Section    string     `json:"section,omitempty"`
	PromotedOn *time.Time `json:"promoted_on,omitempty"`
	PromotedBy *int64     `json:"promoted_by,omitempty"`
}

type TransferDetails struct {
	TransferDate      *time.Time `json:"transfer_date,omitempty"`
	Reason            string     `json:"reason,omitempty"`
	TransferredTo     string     `json:"transferred_to,omitempty"`
	CertificateNumber string     `json:"certificate_number,omitempty"`
	ApprovedBy        *int64     `json:"approved_by,omitempty"`
}

type History struct {
	ID              int64             `json:"id"`
	StudentID       int64             `json:"student_id"`
	SessionID       int64             `json:"session_id"`
	ClassID         *int64            `json:"class_id,omitempty"`
	Section         string            `json:"section,omitempty"`
	RollNumber      int               `json:"roll_number,omitempty"`
	Attendance      AttendanceSummary `json:"attendance"`
	Performance     Performance       `json:"performance"`
	FeesData        json.RawMessage   `json:"fees_data,omitempty"`
	SessionStatus   string            `json:"session_status"`
	PromotedTo      *PromotedTo       `json:"promoted_to,omitempty"`
	TransferDetails *TransferDetails  `json:"transfer_details,omitempty"`
	Remarks         string            `json:"remarks,omitempty"`
	Conduct         string            `json:"conduct,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func HistoryFromDataModel(h *academicDatamodel.History) *History {
	out := &History{
		ID:         h.ID,
		StudentID:  h.StudentID,
		SessionID:  h.SessionID,
		ClassID:    h.ClassID,
		Section:    h.Section,
		RollNumber: h.RollNumber,
		Attendance: AttendanceSummary{
			TotalDays:   h.Attendance.TotalDays,
			PresentDays: h.Attendance.PresentDays,
			Percentage:  h.Attendance.Percentage,
		},
		Performance: Performance{
			Percentage: h.Performance.Percentage,
			Grade:      h.Performance.Grade,
			Status:     h.Performance.Status,
		},
		SessionStatus: h.SessionStatus,
		Remarks:       h.Remarks,
		Conduct:       h.Conduct,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
	if len(h.FeesData) > 0 {
		out.FeesData = json.RawMessage(h.FeesData)
	}
	if h.PromotedTo.SessionID != nil {
		out.PromotedTo = &PromotedTo{
			SessionID:  h.PromotedTo.SessionID,
			ClassID:    h.PromotedTo.ClassID,
			Section:    h.PromotedTo.Section,
			PromotedOn: h.PromotedTo.PromotedOn,
			PromotedBy: h.PromotedTo.PromotedBy,
		}
	}
	if h.TransferDetails.TransferDate != nil {
		out.TransferDetails = &TransferDetails{
			TransferDate:      h.TransferDetails.TransferDate,
			Reason:            h.TransferDetails.Reason,
			TransferredTo:     h.TransferDetails.TransferredTo,
			CertificateNumber: h.TransferDetails.CertificateNumber,
			ApprovedBy:        h.TransferDetails.ApprovedBy,
		}
	}
	return out
}
