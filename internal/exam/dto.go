package exam

import (
	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/core/common/dates"
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type CreateRequest struct {
	Name         string      `json:"name" validate:"required,notblank"`
	ExamType     string      `json:"exam_type"`
	ClassID      *int64      `json:"class_id"`
	Subject      string      `json:"subject"`
	SessionID    *int64      `json:"session_id"`
	Date         *dates.Date `json:"date" validate:"required"`
	TotalMarks   float64     `json:"total_marks" validate:"gt=0"`
	PassingMarks float64     `json:"passing_marks" validate:"gte=0"`
}

func (r CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	v := validation.NewValidator()
	if r.ExamType != "" {
		v.Field("exam_type", r.ExamType).OneOf(Types...)
	}
	v.Field("passing_marks", r.PassingMarks).MaxFloat(r.TotalMarks, internal.ErrCodeValidationFailed)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ListFilter struct {
	ClassID   *int64
	SessionID *int64
	Limit     int
	Offset    int
}

type ExamsResponse struct {
	Exams []*Exam `json:"exams"`
	Count int     `json:"count"`
}

type CreateResultRequest struct {
	ExamID        int64   `json:"exam_id" validate:"required"`
	StudentID     int64   `json:"student_id" validate:"required"`
	MarksObtained float64 `json:"marks_obtained" validate:"gte=0"`
	Grade         string  `json:"grade" validate:"omitempty,max=3"`
	Remarks       string  `json:"remarks"`
}

func (r CreateResultRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type ResultFilter struct {
	ExamID    *int64
	StudentID *int64
	Limit     int
	Offset    int
}

type ResultsResponse struct {
	Results []*Result `json:"results"`
	Count   int       `json:"count"`
}
