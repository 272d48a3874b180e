package audit

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityLog struct {
	ID         int64          `gorm:"primaryKey"`
	EventID    string         `gorm:"column:event_id;uniqueIndex;not null"`
	EventType  string         `gorm:"column:event_type;not null;index"`
	ActorID    *int64         `gorm:"column:actor_id"`
	Payload    datatypes.JSON `gorm:"column:payload"`
	OccurredAt time.Time      `gorm:"column:occurred_at;not null"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
