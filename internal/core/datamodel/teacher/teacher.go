package teacher

import "time"

type Teacher struct {
	ID             int64      `gorm:"primaryKey"`
	EmployeeID     string     `gorm:"column:employee_id;uniqueIndex;not null"`
	UserID         *int64     `gorm:"column:user_id"`
	FirstName      string     `gorm:"column:first_name;not null"`
	LastName       string     `gorm:"column:last_name;not null"`
	Email          string     `gorm:"column:email"`
	Phone          string     `gorm:"column:phone"`
	Qualification  string     `gorm:"column:qualification"`
	Specialization string     `gorm:"column:specialization"`
	JoiningDate    *time.Time `gorm:"column:joining_date"`
	Salary         float64    `gorm:"column:salary"`
	Status         string     `gorm:"column:status;default:active"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Teacher) TableName() string { return "teachers" }
