package student

import "time"

type Student struct {
	ID                int64      `gorm:"primaryKey"`
	StudentCode       string     `gorm:"column:student_code;uniqueIndex;not null"`
	AdmissionNumber   string     `gorm:"column:admission_number;index"`
	UserID            *int64     `gorm:"column:user_id"`
	FirstName         string     `gorm:"column:first_name;not null"`
	LastName          string     `gorm:"column:last_name;not null"`
	DateOfBirth       *time.Time `gorm:"column:date_of_birth"`
	Gender            string     `gorm:"column:gender"`
	Email             string     `gorm:"column:email"`
	Phone             string     `gorm:"column:phone"`
	Address           string     `gorm:"column:address"`
	GuardianName      string     `gorm:"column:guardian_name"`
	GuardianPhone     string     `gorm:"column:guardian_phone"`
	CurrentSessionID  *int64     `gorm:"column:current_session_id;index"`
	CurrentClassID    *int64     `gorm:"column:current_class_id;index"`
	CurrentSection    string     `gorm:"column:current_section"`
	CurrentRollNumber int        `gorm:"column:current_roll_number"`
	Status            string     `gorm:"column:status;default:active;index"`
	TCIssued          bool       `gorm:"column:tc_issued"`
	TCNumber          string     `gorm:"column:tc_number"`
	TCIssuedDate      *time.Time `gorm:"column:tc_issued_date"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Student) TableName() string { return "students" }
