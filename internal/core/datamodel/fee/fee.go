package fee

import "time"

type Fee struct {
	ID            int64      `gorm:"primaryKey"`
	StudentID     int64      `gorm:"column:student_id;not null;index"`
	FeeType       string     `gorm:"column:fee_type;not null"`
	Amount        float64    `gorm:"column:amount;not null"`
	PaidAmount    float64    `gorm:"column:paid_amount"`
	DueDate       *time.Time `gorm:"column:due_date"`
	PaidDate      *time.Time `gorm:"column:paid_date"`
	Status        string     `gorm:"column:status;default:pending;index"`
	PaymentMethod string     `gorm:"column:payment_method"`
	TransactionID string     `gorm:"column:transaction_id"`
	ReceiptNumber string     `gorm:"column:receipt_number"`
	AcademicYear  string     `gorm:"column:academic_year;index"`
	Remarks       string     `gorm:"column:remarks"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Fee) TableName() string { return "fees" }
