package message

import "time"

type Message struct {
	ID          int64      `gorm:"primaryKey"`
	SenderID    int64      `gorm:"column:sender_id;not null;index"`
	RecipientID int64      `gorm:"column:recipient_id;not null;index"`
	Subject     string     `gorm:"column:subject"`
	Body        string     `gorm:"column:body;not null"`
	IsRead      bool       `gorm:"column:is_read"`
	ReadAt      *time.Time `gorm:"column:read_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Message) TableName() string { return "messages" }
