package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	libraryDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/library"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/library"
	"gorm.io/gorm"
)

type LibraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) library.RepositoryAPI {
	return &LibraryRepository{
		db: db,
	}
}

func (r *LibraryRepository) ListBooks(ctx context.Context, filter library.BookFilter) ([]*libraryDatamodel.Book, error) {
	q := r.db.WithContext(ctx).Model(&libraryDatamodel.Book{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR isbn LIKE ?", like, like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*libraryDatamodel.Book
	if err := q.Order("title ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *LibraryRepository) CreateBook(ctx context.Context, b *libraryDatamodel.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return internal.CreateWithCode(tx, b, &b.BookCode, &b.ID, "book_code", library.CodePrefix)
	})
}

func (r *LibraryRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&studentDatamodel.Student{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Issue takes a copy with a guarded decrement so the available count never
// goes below zero under concurrent loans.
func (r *LibraryRepository) Issue(ctx context.Context, issue *libraryDatamodel.BookIssue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&libraryDatamodel.Book{}).
			Where("id = ? AND available > 0", issue.BookID).
			Updates(map[string]interface{}{
				"available":  gorm.Expr("available - 1"),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrBookUnavailable
		}
		return tx.Create(issue).Error
	})
}

func (r *LibraryRepository) Return(ctx context.Context, issueID int64, at time.Time) (*libraryDatamodel.BookIssue, error) {
	var returned libraryDatamodel.BookIssue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", issueID).First(&returned).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrIssueNotFound
			}
			return err
		}

		res := tx.Model(&libraryDatamodel.BookIssue{}).
			Where("id = ? AND status <> ?", issueID, library.IssueReturned).
			Updates(map[string]interface{}{
				"status":      library.IssueReturned,
				"return_date": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrBookAlreadyReturned
		}

		if err := tx.Model(&libraryDatamodel.Book{}).Where("id = ?", returned.BookID).Updates(map[string]interface{}{
			"available":  gorm.Expr("available + 1"),
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}

		returned.Status = library.IssueReturned
		returned.ReturnDate = &at
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &returned, nil
}

func (r *LibraryRepository) ListIssues(ctx context.Context, filter library.IssueFilter) ([]*libraryDatamodel.BookIssue, error) {
	q := r.db.WithContext(ctx).Model(&libraryDatamodel.BookIssue{})
	if filter.BookID != nil {
		q = q.Where("book_id = ?", *filter.BookID)
	}
	if filter.StudentID != nil {
		q = q.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*libraryDatamodel.BookIssue
	if err := q.Order("issue_date DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *LibraryRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&libraryDatamodel.BookIssue{}).
		Where("status = ? AND due_date < ?", library.IssueIssued, now).
		Update("status", library.IssueOverdue)
	return res.RowsAffected, res.Error
}
