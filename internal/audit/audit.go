package audit

import (
	"encoding/json"
	"time"

	auditDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/audit"
)

type Activity struct {
	ID         int64           `json:"id"`
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	ActorID    *int64          `json:"actor_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func FromDataModel(a *auditDatamodel.ActivityLog) *Activity {
	out := &Activity{
		ID:         a.ID,
		EventID:    a.EventID,
		EventType:  a.EventType,
		ActorID:    a.ActorID,
		OccurredAt: a.OccurredAt,
	}
	if len(a.Payload) > 0 {
		out.Payload = json.RawMessage(a.Payload)
	}
	return out
}

type ListFilter struct {
	EventType string
	Limit     int
	Offset    int
}

type ActivityResponse struct {
	Activity []*Activity `json:"activity"`
	Count    int         `json:"count"`
}
