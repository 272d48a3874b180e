package academic

import (
	"time"

	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
)

const (
	SessionUpcoming  = "upcoming"
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionArchived  = "archived"
)

var SessionStatuses = []string{SessionUpcoming, SessionActive, SessionCompleted, SessionArchived}

type Session struct {
	ID               int64     `json:"id"`
	SessionName      string    `json:"session_name"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	IsActive         bool      `json:"is_active"`
	IsCurrent        bool      `json:"is_current"`
	Status           string    `json:"status"`
	Description      string    `json:"description,omitempty"`
	PromotedCount    int       `json:"promoted_count"`
	TransferredCount int       `json:"transferred_count"`
	GraduatedCount   int       `json:"graduated_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func SessionFromDataModel(s *academicDatamodel.Session) *Session {
	return &Session{
		ID:               s.ID,
		SessionName:      s.SessionName,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		IsActive:         s.IsActive,
		IsCurrent:        s.IsCurrent,
		Status:           s.Status,
		Description:      s.Description,
		PromotedCount:    s.PromotedCount,
		TransferredCount: s.TransferredCount,
		GraduatedCount:   s.GraduatedCount,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
