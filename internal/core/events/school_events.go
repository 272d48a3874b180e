package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePromotionCompleted    = "promotion.completed"
	EventTypeStudentGraduated      = "student.graduated"
	EventTypeTransferApproved      = "transfer.approved"
	EventTypeSessionCurrentChanged = "session.current_changed"
	EventTypeRoleChanged           = "role.changed"
)

// AllEventTypes lists every event the audit trail records.
var AllEventTypes = []string{
	EventTypePromotionCompleted,
	EventTypeStudentGraduated,
	EventTypeTransferApproved,
	EventTypeSessionCurrentChanged,
	EventTypeRoleChanged,
}

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type PromotionCompletedEvent struct {
	BaseEvent
	FromSessionID int64 `json:"from_session_id"`
	ToSessionID   int64 `json:"to_session_id"`
	Promoted      int   `json:"promoted"`
	Detained      int   `json:"detained"`
	Failed        int   `json:"failed"`
	ActorID       int64 `json:"actor_id"`
}

func NewPromotionCompletedEvent(fromSessionID, toSessionID int64, promoted, detained, failed int, actorID int64) *PromotionCompletedEvent {
	return &PromotionCompletedEvent{
		BaseEvent: newBase(EventTypePromotionCompleted, map[string]interface{}{
			"from_session_id": fromSessionID,
			"to_session_id":   toSessionID,
			"promoted":        promoted,
			"detained":        detained,
			"failed":          failed,
			"actor_id":        actorID,
		}),
		FromSessionID: fromSessionID,
		ToSessionID:   toSessionID,
		Promoted:      promoted,
		Detained:      detained,
		Failed:        failed,
		ActorID:       actorID,
	}
}

type StudentGraduatedEvent struct {
	BaseEvent
	StudentID int64 `json:"student_id"`
	SessionID int64 `json:"session_id"`
	ActorID   int64 `json:"actor_id"`
}

func NewStudentGraduatedEvent(studentID, sessionID, actorID int64) *StudentGraduatedEvent {
	return &StudentGraduatedEvent{
		BaseEvent: newBase(EventTypeStudentGraduated, map[string]interface{}{
			"student_id": studentID,
			"session_id": sessionID,
			"actor_id":   actorID,
		}),
		StudentID: studentID,
		SessionID: sessionID,
		ActorID:   actorID,
	}
}

type TransferApprovedEvent struct {
	BaseEvent
	TransferID int64  `json:"transfer_id"`
	StudentID  int64  `json:"student_id"`
	TCNumber   string `json:"tc_number"`
	ActorID    int64  `json:"actor_id"`
}

func NewTransferApprovedEvent(transferID, studentID int64, tcNumber string, actorID int64) *TransferApprovedEvent {
	return &TransferApprovedEvent{
		BaseEvent: newBase(EventTypeTransferApproved, map[string]interface{}{
			"transfer_id": transferID,
			"student_id":  studentID,
			"tc_number":   tcNumber,
			"actor_id":    actorID,
		}),
		TransferID: transferID,
		StudentID:  studentID,
		TCNumber:   tcNumber,
		ActorID:    actorID,
	}
}

type SessionCurrentChangedEvent struct {
	BaseEvent
	SessionID int64 `json:"session_id"`
	ActorID   int64 `json:"actor_id"`
}

func NewSessionCurrentChangedEvent(sessionID, actorID int64) *SessionCurrentChangedEvent {
	return &SessionCurrentChangedEvent{
		BaseEvent: newBase(EventTypeSessionCurrentChanged, map[string]interface{}{
			"session_id": sessionID,
			"actor_id":   actorID,
		}),
		SessionID: sessionID,
		ActorID:   actorID,
	}
}

type RoleChangedEvent struct {
	BaseEvent
	RoleID  int64  `json:"role_id"`
	Action  string `json:"action"`
	ActorID int64  `json:"actor_id"`
}

// NewRoleChangedEvent records a create, update, delete or permission change on a role.
func NewRoleChangedEvent(roleID int64, action string, actorID int64) *RoleChangedEvent {
	return &RoleChangedEvent{
		BaseEvent: newBase(EventTypeRoleChanged, map[string]interface{}{
			"role_id":  roleID,
			"action":   action,
			"actor_id": actorID,
		}),
		RoleID:  roleID,
		Action:  action,
		ActorID: actorID,
	}
}
