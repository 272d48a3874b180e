package exam

import (
	"math"
	"time"

	examDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/exam"
)

var Types = []string{"unit_test", "midterm", "final", "quarterly", "half_yearly", "annual", "practical"}

type Exam struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ExamType     string    `json:"exam_type,omitempty"`
	ClassID      *int64    `json:"class_id,omitempty"`
	Subject      string    `json:"subject,omitempty"`
	SessionID    *int64    `json:"session_id,omitempty"`
	Date         time.Time `json:"date"`
	TotalMarks   float64   `json:"total_marks"`
	PassingMarks float64   `json:"passing_marks"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromDataModel(e *examDatamodel.Exam) *Exam {
	return &Exam{
		ID:           e.ID,
		Name:         e.Name,
		ExamType:     e.ExamType,
		ClassID:      e.ClassID,
		Subject:      e.Subject,
		SessionID:    e.SessionID,
		Date:         e.Date,
		TotalMarks:   e.TotalMarks,
		PassingMarks: e.PassingMarks,
		CreatedAt:    e.CreatedAt,
	}
}

type Result struct {
	ID            int64     `json:"id"`
	ExamID        int64     `json:"exam_id"`
	StudentID     int64     `json:"student_id"`
	MarksObtained float64   `json:"marks_obtained"`
	Percentage    float64   `json:"percentage"`
	Grade         string    `json:"grade"`
	Passed        bool      `json:"passed"`
	Remarks       string    `json:"remarks,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func ResultFromDataModel(r *examDatamodel.Result) *Result {
	return &Result{
		ID:            r.ID,
		ExamID:        r.ExamID,
		StudentID:     r.StudentID,
		MarksObtained: r.MarksObtained,
		Percentage:    r.Percentage,
		Grade:         r.Grade,
		Passed:        r.Passed,
		Remarks:       r.Remarks,
		CreatedAt:     r.CreatedAt,
	}
}

// Percentage is rounded to two decimals.
func Percentage(marks, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(marks/total*10000) / 100
}

// Grade maps a percentage to a letter grade.
func Grade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}
