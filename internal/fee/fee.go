package fee

import (
	"fmt"
	"time"

	feeDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/fee"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
	StatusPartial = "partial"
)

var Statuses = []string{StatusPending, StatusPaid, StatusOverdue, StatusPartial}

// Outstanding lists the statuses that still expect money.
var Outstanding = []string{StatusPending, StatusPartial, StatusOverdue}

type Fee struct {
	ID            int64      `json:"id"`
	StudentID     int64      `json:"student_id"`
	FeeType       string     `json:"fee_type"`
	Amount        float64    `json:"amount"`
	PaidAmount    float64    `json:"paid_amount"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	PaidDate      *time.Time `json:"paid_date,omitempty"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	ReceiptNumber string     `json:"receipt_number,omitempty"`
	AcademicYear  string     `json:"academic_year,omitempty"`
	Remarks       string     `json:"remarks,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func FromDataModel(f *feeDatamodel.Fee) *Fee {
	return &Fee{
		ID:            f.ID,
		StudentID:     f.StudentID,
		FeeType:       f.FeeType,
		Amount:        f.Amount,
		PaidAmount:    f.PaidAmount,
		DueDate:       f.DueDate,
		PaidDate:      f.PaidDate,
		Status:        f.Status,
		PaymentMethod: f.PaymentMethod,
		TransactionID: f.TransactionID,
		ReceiptNumber: f.ReceiptNumber,
		AcademicYear:  f.AcademicYear,
		Remarks:       f.Remarks,
		CreatedAt:     f.CreatedAt,
	}
}

// Payment is one instalment applied to a fee.
type Payment struct {
	Amount        float64
	PaymentMethod string
	TransactionID string
	ReceiptNumber string
	PaidAt        time.Time
}

func ReceiptNumber(at time.Time) string {
	return fmt.Sprintf("RCT%d", at.UnixMilli())
}
