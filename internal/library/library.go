package library

import (
	"time"

	libraryDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/library"
)

const (
	CodePrefix = "BOOK"
	LoanPeriod = 14 * 24 * time.Hour
)

const (
	IssueIssued   = "issued"
	IssueReturned = "returned"
	IssueOverdue  = "overdue"
)

var IssueStatuses = []string{IssueIssued, IssueReturned, IssueOverdue}

type Book struct {
	ID        int64     `json:"id"`
	BookID    string    `json:"book_id"`
	ISBN      string    `json:"isbn,omitempty"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	Publisher string    `json:"publisher,omitempty"`
	Category  string    `json:"category,omitempty"`
	Quantity  int       `json:"quantity"`
	Available int       `json:"available"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func BookFromDataModel(b *libraryDatamodel.Book) *Book {
	return &Book{
		ID:        b.ID,
		BookID:    b.BookCode,
		ISBN:      b.ISBN,
		Title:     b.Title,
		Author:    b.Author,
		Publisher: b.Publisher,
		Category:  b.Category,
		Quantity:  b.Quantity,
		Available: b.Available,
		Location:  b.Location,
		CreatedAt: b.CreatedAt,
	}
}

type Issue struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"book_id"`
	StudentID  *int64     `json:"student_id,omitempty"`
	UserID     *int64     `json:"user_id,omitempty"`
	IssuedBy   *int64     `json:"issued_by,omitempty"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
	Fine       float64    `json:"fine"`
}

func IssueFromDataModel(i *libraryDatamodel.BookIssue) *Issue {
	return &Issue{
		ID:         i.ID,
		BookID:     i.BookID,
		StudentID:  i.StudentID,
		UserID:     i.UserID,
		IssuedBy:   i.IssuedBy,
		IssueDate:  i.IssueDate,
		DueDate:    i.DueDate,
		ReturnDate: i.ReturnDate,
		Status:     i.Status,
		Fine:       i.Fine,
	}
}
