package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/edumaster/internal"
	auditDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/audit"
	"github.com/frahmantamala/edumaster/internal/core/events"
	"gorm.io/datatypes"
)

// EventHandler writes every domain event it receives to the activity log.
type EventHandler struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewEventHandler(repo RepositoryAPI, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		repo:   repo,
		logger: logger,
	}
}

func (h *EventHandler) HandleEvent(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("encode payload of %s: %w", event.EventType(), err)
	}

	row := &auditDatamodel.ActivityLog{
		EventID:    event.EventID(),
		EventType:  event.EventType(),
		ActorID:    actorOf(event),
		Payload:    datatypes.JSON(payload),
		OccurredAt: event.OccurredAt(),
	}
	if err := h.repo.Create(ctx, row); err != nil {
		// redelivered event
		if internal.IsDuplicateKey(err) {
			h.logger.Debug("activity already recorded", "event_id", row.EventID)
			return nil
		}
		return fmt.Errorf("record activity %s: %w", row.EventID, err)
	}

	h.logger.Info("activity recorded",
		"event_type", row.EventType,
		"event_id", row.EventID)
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	for _, eventType := range events.AllEventTypes {
		eventBus.Subscribe(eventType, h.HandleEvent)
	}

	h.logger.Info("audit event handlers registered", "handlers", events.AllEventTypes)
}

func actorOf(event events.Event) *int64 {
	data, ok := event.Payload().(map[string]interface{})
	if !ok {
		return nil
	}
	if id, ok := data["actor_id"].(int64); ok && id != 0 {
		return &id
	}
	return nil
}
