package exam

import "time"

type Exam struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	ExamType     string    `gorm:"column:exam_type"`
	ClassID      *int64    `gorm:"column:class_id;index"`
	Subject      string    `gorm:"column:subject"`
	SessionID    *int64    `gorm:"column:session_id"`
	Date         time.Time `gorm:"column:date"`
	TotalMarks   float64   `gorm:"column:total_marks;not null"`
	PassingMarks float64   `gorm:"column:passing_marks"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Exam) TableName() string { return "exams" }

type Result struct {
	ID            int64     `gorm:"primaryKey"`
	ExamID        int64     `gorm:"column:exam_id;not null;uniqueIndex:idx_result_exam_student"`
	StudentID     int64     `gorm:"column:student_id;not null;uniqueIndex:idx_result_exam_student"`
	MarksObtained float64   `gorm:"column:marks_obtained"`
	Percentage    float64   `gorm:"column:percentage"`
	Grade         string    `gorm:"column:grade"`
	Passed        bool      `gorm:"column:passed"`
	Remarks       string    `gorm:"column:remarks"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Result) TableName() string { return "results" }
