package student

import (
	"time"

	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
)

const (
	StatusActive      = "active"
	StatusGraduated   = "graduated"
	StatusTransferred = "transferred"
	StatusLeft        = "left"
	StatusAlumni      = "alumni"

	CodePrefix = "STU"
)

var Statuses = []string{StatusActive, StatusGraduated, StatusTransferred, StatusLeft, StatusAlumni}

type Student struct {
	ID                int64      `json:"id"`
	StudentID         string     `json:"student_id"`
	AdmissionNumber   string     `json:"admission_number,omitempty"`
	UserID            *int64     `json:"user_id,omitempty"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	Gender            string     `json:"gender,omitempty"`
	Email             string     `json:"email,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Address           string     `json:"address,omitempty"`
	GuardianName      string     `json:"guardian_name,omitempty"`
	GuardianPhone     string     `json:"guardian_phone,omitempty"`
	CurrentSessionID  *int64     `json:"current_session_id,omitempty"`
	CurrentClassID    *int64     `json:"current_class_id,omitempty"`
	CurrentSection    string     `json:"current_section,omitempty"`
	CurrentRollNumber int        `json:"current_roll_number,omitempty"`
	Status            string     `json:"status"`
	TCIssued          bool       `json:"tc_issued"`
	TCNumber          string     `json:"tc_number,omitempty"`
	TCIssuedDate      *time.Time `json:"tc_issued_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Changes is a partial update of a student. Columns holds profile columns
// only. Status, when set, is written only while the stored status still
// equals PriorStatus.
type Changes struct {
	Columns     map[string]interface{}
	Status      *string
	PriorStatus string
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

func FromDataModel(s *studentDatamodel.Student) *Student {
	return &Student{
		ID:                s.ID,
		StudentID:         s.StudentCode,
		AdmissionNumber:   s.AdmissionNumber,
		UserID:            s.UserID,
		FirstName:         s.FirstName,
		LastName:          s.LastName,
		DateOfBirth:       s.DateOfBirth,
		Gender:            s.Gender,
		Email:             s.Email,
		Phone:             s.Phone,
		Address:           s.Address,
		GuardianName:      s.GuardianName,
		GuardianPhone:     s.GuardianPhone,
		CurrentSessionID:  s.CurrentSessionID,
		CurrentClassID:    s.CurrentClassID,
		CurrentSection:    s.CurrentSection,
		CurrentRollNumber: s.CurrentRollNumber,
		Status:            s.Status,
		TCIssued:          s.TCIssued,
		TCNumber:          s.TCNumber,
		TCIssuedDate:      s.TCIssuedDate,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
