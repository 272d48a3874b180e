package teacher

import (
	"time"

	teacherDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/teacher"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on_leave"

	CodePrefix = "EMP"
)

type Teacher struct {
	ID             int64      `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	UserID         *int64     `json:"user_id,omitempty"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Qualification  string     `json:"qualification,omitempty"`
	Specialization string     `json:"specialization,omitempty"`
	JoiningDate    *time.Time `json:"joining_date,omitempty"`
	Salary         float64    `json:"salary"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func FromDataModel(t *teacherDatamodel.Teacher) *Teacher {
	return &Teacher{
		ID:             t.ID,
		EmployeeID:     t.EmployeeID,
		UserID:         t.UserID,
		FirstName:      t.FirstName,
		LastName:       t.LastName,
		Email:          t.Email,
		Phone:          t.Phone,
		Qualification:  t.Qualification,
		Specialization: t.Specialization,
		JoiningDate:    t.JoiningDate,
		Salary:         t.Salary,
		Status:         t.Status,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
