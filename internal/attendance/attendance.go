package attendance

import (
	"time"

	attendanceDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/attendance"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusHalfDay = "half-day"
)

type Record struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	ClassID   *int64    `json:"class_id,omitempty"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Remarks   string    `json:"remarks,omitempty"`
	MarkedBy  *int64    `json:"marked_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(a *attendanceDatamodel.Attendance) *Record {
	return &Record{
		ID:        a.ID,
		StudentID: a.StudentID,
		ClassID:   a.ClassID,
		Date:      a.Date,
		Status:    a.Status,
		Remarks:   a.Remarks,
		MarkedBy:  a.MarkedBy,
		CreatedAt: a.CreatedAt,
	}
}
