package postgres

import (
	"context"
	"errors"
	"time"

	messageDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/message"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/message"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) message.RepositoryAPI {
	return &MessageRepository{
		db: db,
	}
}

func (r *MessageRepository) ListFor(ctx context.Context, userID int64, filter message.ListFilter) ([]*messageDatamodel.Message, error) {
	q := r.db.WithContext(ctx).Where("sender_id = ? OR recipient_id = ?", userID, userID)
	if filter.UnreadOnly {
		q = q.Where("recipient_id = ? AND is_read = ?", userID, false)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*messageDatamodel.Message
	if err := q.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*messageDatamodel.Message, error) {
	var row messageDatamodel.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *MessageRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MessageRepository) Create(ctx context.Context, m *messageDatamodel.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageRepository) MarkRead(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&messageDatamodel.Message{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error
}
