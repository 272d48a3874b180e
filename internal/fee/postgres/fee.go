package postgres

import (
	"context"
	"time"

	feeDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/fee"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/fee"
	"gorm.io/gorm"
)

type FeeRepository struct {
	db *gorm.DB
}

func NewFeeRepository(db *gorm.DB) fee.RepositoryAPI {
	return &FeeRepository{
		db: db,
	}
}

func (r *FeeRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&studentDatamodel.Student{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FeeRepository) List(ctx context.Context, filter fee.ListFilter) ([]*feeDatamodel.Fee, error) {
	q := r.db.WithContext(ctx).Model(&feeDatamodel.Fee{})
	if filter.StudentID != nil {
		q = q.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.AcademicYear != "" {
		q = q.Where("academic_year = ?", filter.AcademicYear)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*feeDatamodel.Fee
	if err := q.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *FeeRepository) Create(ctx context.Context, f *feeDatamodel.Fee) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FeeRepository) Pay(ctx context.Context, id int64, p fee.Payment) (*feeDatamodel.Fee, error) {
	var updated *feeDatamodel.Fee
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&feeDatamodel.Fee{}).Where("id = ?", id).Updates(map[string]interface{}{
			"paid_amount":    gorm.Expr("paid_amount + ?", p.Amount),
			"status":         gorm.Expr("CASE WHEN paid_amount + ? >= amount THEN ? ELSE ? END", p.Amount, fee.StatusPaid, fee.StatusPartial),
			"paid_date":      p.PaidAt,
			"payment_method": p.PaymentMethod,
			"transaction_id": p.TransactionID,
			"receipt_number": p.ReceiptNumber,
			"updated_at":     p.PaidAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		var f feeDatamodel.Fee
		if err := tx.Where("id = ?", id).First(&f).Error; err != nil {
			return err
		}
		updated = &f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *FeeRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&feeDatamodel.Fee{}).
		Where("status IN ? AND due_date IS NOT NULL AND due_date < ?", []string{fee.StatusPending, fee.StatusPartial}, now).
		Updates(map[string]interface{}{
			"status":     fee.StatusOverdue,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}
