package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
	classDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/schoolclass"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/promotion"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const historyActive = "active"

var errHistoryTaken = internal.NewConflictError("Student already has a record in the target session", internal.ErrCodeDuplicate)

type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) promotion.RepositoryAPI {
	return &PromotionRepository{
		db: db,
	}
}

func (r *PromotionRepository) GetSession(ctx context.Context, id int64) (*academicDatamodel.Session, error) {
	var s academicDatamodel.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PromotionRepository) ClassExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&classDatamodel.Class{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PromotionRepository) GetStudent(ctx context.Context, id int64) (*studentDatamodel.Student, error) {
	return findStudent(r.db.WithContext(ctx), id)
}

func (r *PromotionRepository) Promote(ctx context.Context, m promotion.Move) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := findStudent(tx, m.StudentID)
		if err != nil {
			return err
		}
		if st == nil {
			return internal.ErrStudentNotFound
		}

		var promotedBy *int64
		if m.PromotedBy != 0 {
			promotedBy = &m.PromotedBy
		}
		if err := closeHistory(tx, m.StudentID, m.FromSessionID, map[string]interface{}{
			"session_status":          "promoted",
			"promoted_to_session_id":  m.ToSessionID,
			"promoted_to_class_id":    m.TargetClassID,
			"promoted_to_section":     m.Section,
			"promoted_to_promoted_on": m.PromotedOn,
			"promoted_to_promoted_by": promotedBy,
		}); err != nil {
			return err
		}

		next := &academicDatamodel.History{
			StudentID:     m.StudentID,
			SessionID:     m.ToSessionID,
			ClassID:       m.TargetClassID,
			Section:       m.Section,
			RollNumber:    m.RollNumber,
			SessionStatus: historyActive,
		}
		if err := tx.Create(next).Error; err != nil {
			if internal.IsDuplicateKey(err) {
				return errHistoryTaken
			}
			return err
		}

		if err := tx.Model(&studentDatamodel.Student{}).Where("id = ?", m.StudentID).Updates(map[string]interface{}{
			"current_session_id":  m.ToSessionID,
			"current_class_id":    m.TargetClassID,
			"current_section":     m.Section,
			"current_roll_number": m.RollNumber,
			"updated_at":          time.Now(),
		}).Error; err != nil {
			return err
		}

		source := m.SourceClassID
		if source == nil {
			source = st.CurrentClassID
		}
		if source != nil {
			if err := tx.Where("class_id = ? AND student_id = ?", *source, m.StudentID).
				Delete(&classDatamodel.ClassStudent{}).Error; err != nil {
				return err
			}
		}
		if m.TargetClassID != nil {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&classDatamodel.ClassStudent{ClassID: *m.TargetClassID, StudentID: m.StudentID}).Error; err != nil {
				return err
			}
		}

		return bumpCounter(tx, m.ToSessionID, "promoted_count")
	})
}

func (r *PromotionRepository) Detain(ctx context.Context, studentID, sessionID int64, remarks string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireStudent(tx, studentID); err != nil {
			return err
		}
		return closeHistory(tx, studentID, sessionID, map[string]interface{}{
			"session_status": "detained",
			"remarks":        remarks,
		})
	})
}

func (r *PromotionRepository) Graduate(ctx context.Context, studentID, sessionID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireStudent(tx, studentID); err != nil {
			return err
		}
		if err := closeHistory(tx, studentID, sessionID, map[string]interface{}{
			"session_status": "graduated",
		}); err != nil {
			return err
		}
		if err := tx.Model(&studentDatamodel.Student{}).Where("id = ?", studentID).Updates(map[string]interface{}{
			"status":     "graduated",
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}
		return bumpCounter(tx, sessionID, "graduated_count")
	})
}

func (r *PromotionRepository) CreateRequest(ctx context.Context, p *academicDatamodel.PromotionRequest) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PromotionRepository) ListRequests(ctx context.Context, filter promotion.ListFilter) ([]*academicDatamodel.PromotionRequest, error) {
	q := r.db.WithContext(ctx).Model(&academicDatamodel.PromotionRequest{})
	if filter.SessionID != nil {
		q = q.Where("from_session_id = ? OR to_session_id = ?", *filter.SessionID, *filter.SessionID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*academicDatamodel.PromotionRequest
	if err := q.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PromotionRepository) CreateTransfer(ctx context.Context, t *academicDatamodel.TransferRequest) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *PromotionRepository) ListTransfers(ctx context.Context, filter promotion.TransferFilter) ([]*academicDatamodel.TransferRequest, error) {
	q := r.db.WithContext(ctx).Model(&academicDatamodel.TransferRequest{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.RequestType != "" {
		q = q.Where("request_type = ?", filter.RequestType)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*academicDatamodel.TransferRequest
	if err := q.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PromotionRepository) GetTransfer(ctx context.Context, id int64) (*academicDatamodel.TransferRequest, error) {
	return findTransfer(r.db.WithContext(ctx), id)
}

// ApproveTransfer flips a pending request to approved. A history record for
// the session is closed as transferred when it exists; one that is already
// closed aborts the approval.
func (r *PromotionRepository) ApproveTransfer(ctx context.Context, id, approverID int64, tcNumber string, at time.Time) (*academicDatamodel.TransferRequest, error) {
	var approved *academicDatamodel.TransferRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := findTransfer(tx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return internal.ErrTransferNotFound
		}

		var approver *int64
		if approverID != 0 {
			approver = &approverID
		}

		res := tx.Model(&academicDatamodel.TransferRequest{}).
			Where("id = ? AND status = ?", id, promotion.TransferPending).
			Updates(map[string]interface{}{
				"status":        promotion.TransferApproved,
				"approved_by":   approver,
				"approved_at":   at,
				"tc_number":     tcNumber,
				"tc_issue_date": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrTransferNotPending
		}

		if err := requireStudent(tx, t.StudentID); err != nil {
			return err
		}

		if t.SessionID != nil {
			err := closeHistory(tx, t.StudentID, *t.SessionID, map[string]interface{}{
				"session_status":              "transferred",
				"transfer_date":               at,
				"transfer_reason":             t.TransferTo.Reason,
				"transfer_transferred_to":     t.TransferTo.SchoolName,
				"transfer_certificate_number": tcNumber,
				"transfer_approved_by":        approver,
			})
			if err != nil && !errors.Is(err, internal.ErrHistoryNotFound) {
				return err
			}
			if err := bumpCounter(tx, *t.SessionID, "transferred_count"); err != nil {
				return err
			}
		}

		if err := tx.Model(&studentDatamodel.Student{}).Where("id = ?", t.StudentID).Updates(map[string]interface{}{
			"status":         "transferred",
			"tc_issued":      true,
			"tc_number":      tcNumber,
			"tc_issued_date": at,
			"updated_at":     time.Now(),
		}).Error; err != nil {
			return err
		}

		approved, err = findTransfer(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// closeHistory moves the active record of (student, session) to a final
// status. The status guard in the WHERE clause makes concurrent closes of
// the same record fail instead of overwriting each other.
func closeHistory(tx *gorm.DB, studentID, sessionID int64, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	res := tx.Model(&academicDatamodel.History{}).
		Where("student_id = ? AND session_id = ? AND session_status = ?", studentID, sessionID, historyActive).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&academicDatamodel.History{}).
		Where("student_id = ? AND session_id = ?", studentID, sessionID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return internal.ErrHistoryNotFound
	}
	return internal.ErrHistoryNotActive
}

func bumpCounter(tx *gorm.DB, sessionID int64, column string) error {
	return tx.Model(&academicDatamodel.Session{}).
		Where("id = ?", sessionID).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
}

func requireStudent(tx *gorm.DB, id int64) error {
	st, err := findStudent(tx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return internal.ErrStudentNotFound
	}
	return nil
}

func findStudent(q *gorm.DB, id int64) (*studentDatamodel.Student, error) {
	var st studentDatamodel.Student
	if err := q.Where("id = ?", id).First(&st).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func findTransfer(q *gorm.DB, id int64) (*academicDatamodel.TransferRequest, error) {
	var t academicDatamodel.TransferRequest
	if err := q.Where("id = ?", id).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
