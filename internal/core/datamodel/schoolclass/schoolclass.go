package schoolclass

import "time"

type Class struct {
	ID             int64     `gorm:"primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	Grade          int       `gorm:"column:grade;not null"`
	Section        string    `gorm:"column:section"`
	SessionID      *int64    `gorm:"column:session_id;index"`
	ClassTeacherID *int64    `gorm:"column:class_teacher_id"`
	Room           string    `gorm:"column:room"`
	Capacity       int       `gorm:"column:capacity"`
	IsActive       bool      `gorm:"column:is_active"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Class) TableName() string { return "classes" }

// ClassStudent is one row of a class roster.
type ClassStudent struct {
	ClassID   int64     `gorm:"column:class_id;primaryKey"`
	StudentID int64     `gorm:"column:student_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ClassStudent) TableName() string { return "class_students" }
