package library

import (
	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type CreateBookRequest struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title" validate:"required,notblank"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
	Location  string `json:"location"`
}

func (r CreateBookRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type BookFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

type BooksResponse struct {
	Books []*Book `json:"books"`
	Count int     `json:"count"`
}

// IssueRequest lends a book to a student or to a staff user.
type IssueRequest struct {
	BookID    int64  `json:"book_id" validate:"required"`
	StudentID *int64 `json:"student_id"`
	UserID    *int64 `json:"user_id"`
}

func (r IssueRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	if r.StudentID == nil && r.UserID == nil {
		return internal.NewValidationFieldError("student_id", "student_id or user_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type IssueFilter struct {
	BookID    *int64
	StudentID *int64
	Status    string
	Limit     int
	Offset    int
}

func (f IssueFilter) Validate() error {
	v := validation.NewValidator()
	if f.Status != "" {
		v.Field("status", f.Status).OneOf(IssueStatuses...)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type IssuesResponse struct {
	Issues []*Issue `json:"issues"`
	Count  int      `json:"count"`
}
