package attendance

import "time"

type Attendance struct {
	ID        int64     `gorm:"primaryKey"`
	StudentID int64     `gorm:"column:student_id;not null;index"`
	ClassID   *int64    `gorm:"column:class_id;index"`
	Date      time.Time `gorm:"column:date;not null;index"`
	Status    string    `gorm:"column:status;not null"`
	Remarks   string    `gorm:"column:remarks"`
	MarkedBy  *int64    `gorm:"column:marked_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Attendance) TableName() string { return "attendance" }
