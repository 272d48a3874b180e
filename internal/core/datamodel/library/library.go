package library

import "time"

type Book struct {
	ID        int64     `gorm:"primaryKey"`
	BookCode  string    `gorm:"column:book_code;uniqueIndex;not null"`
	ISBN      string    `gorm:"column:isbn"`
	Title     string    `gorm:"column:title;not null"`
	Author    string    `gorm:"column:author"`
	Publisher string    `gorm:"column:publisher"`
	Category  string    `gorm:"column:category"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Available int       `gorm:"column:available;not null"`
	Location  string    `gorm:"column:location"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Book) TableName() string { return "books" }

type BookIssue struct {
	ID         int64      `gorm:"primaryKey"`
	BookID     int64      `gorm:"column:book_id;not null;index"`
	StudentID  *int64     `gorm:"column:student_id;index"`
	UserID     *int64     `gorm:"column:user_id"`
	IssuedBy   *int64     `gorm:"column:issued_by"`
	IssueDate  time.Time  `gorm:"column:issue_date;not null"`
	DueDate    time.Time  `gorm:"column:due_date;not null"`
	ReturnDate *time.Time `gorm:"column:return_date"`
	Status     string     `gorm:"column:status;default:issued;index"`
	Fine       float64    `gorm:"column:fine"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (BookIssue) TableName() string { return "book_issues" }
