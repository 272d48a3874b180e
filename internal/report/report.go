package report

import (
	"math"
	"time"
)

type Session struct {
	ID          int64     `json:"id" db:"id"`
	SessionName string    `json:"session_name" db:"session_name"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	Status      string    `json:"status" db:"status"`
	IsCurrent   bool      `json:"is_current" db:"is_current"`
}

// StatusCounts tallies the history rows of one session by session status.
type StatusCounts struct {
	Total       int `db:"total"`
	Active      int `db:"active"`
	Promoted    int `db:"promoted"`
	Detained    int `db:"detained"`
	Graduated   int `db:"graduated"`
	Transferred int `db:"transferred"`
}

type Statistics struct {
	TotalStudents int     `json:"total_students"`
	Active        int     `json:"active"`
	Promoted      int     `json:"promoted"`
	Detained      int     `json:"detained"`
	Graduated     int     `json:"graduated"`
	Transferred   int     `json:"transferred"`
	PromotionRate float64 `json:"promotion_rate"`
	RetentionRate float64 `json:"retention_rate"`
}

type SessionStatistics struct {
	Session    *Session   `json:"session"`
	Statistics Statistics `json:"statistics"`
}

// NewStatistics derives the rates. Retention counts everyone who did not
// transfer out.
func NewStatistics(c StatusCounts) Statistics {
	return Statistics{
		TotalStudents: c.Total,
		Active:        c.Active,
		Promoted:      c.Promoted,
		Detained:      c.Detained,
		Graduated:     c.Graduated,
		Transferred:   c.Transferred,
		PromotionRate: Rate(c.Promoted, c.Total),
		RetentionRate: Rate(c.Total-c.Transferred, c.Total),
	}
}

// Rate is part/total as a percentage with two decimals, 0 for an empty total.
func Rate(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}

type Student struct {
	ID        int64  `json:"id" db:"id"`
	StudentID string `json:"student_id" db:"student_code"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Status    string `json:"status" db:"status"`
}

type PromotedTo struct {
	SessionID  *int64     `json:"session_id,omitempty"`
	ClassID    *int64     `json:"class_id,omitempty"`
	Section    string     `json:"section,omitempty"`
	PromotedOn *time.Time `json:"promoted_on,omitempty"`
}

type ProgressionRow struct {
	SessionID             int64       `json:"session_id" db:"session_id"`
	SessionName           string      `json:"session_name" db:"session_name"`
	ClassID               *int64      `json:"class_id,omitempty" db:"class_id"`
	ClassName             *string     `json:"class_name,omitempty" db:"class_name"`
	Section               string      `json:"section,omitempty" db:"section"`
	RollNumber            int         `json:"roll_number" db:"roll_number"`
	AttendancePercentage  float64     `json:"attendance_percentage" db:"attendance_percentage"`
	PerformancePercentage float64     `json:"performance_percentage" db:"performance_percentage"`
	Grade                 string      `json:"grade,omitempty" db:"performance_grade"`
	Status                string      `json:"status" db:"session_status"`
	Promoted              bool        `json:"promoted"`
	PromotedTo            *PromotedTo `json:"promoted_to,omitempty" db:"-"`

	PromotedToSessionID *int64     `json:"-" db:"promoted_to_session_id"`
	PromotedToClassID   *int64     `json:"-" db:"promoted_to_class_id"`
	PromotedToSection   *string    `json:"-" db:"promoted_to_section"`
	PromotedOn          *time.Time `json:"-" db:"promoted_to_promoted_on"`
}

// Finish fills the derived promotion fields after scanning.
func (p *ProgressionRow) Finish() {
	p.Promoted = p.Status == "promoted"
	if p.PromotedToSessionID == nil {
		return
	}
	p.PromotedTo = &PromotedTo{
		SessionID:  p.PromotedToSessionID,
		ClassID:    p.PromotedToClassID,
		PromotedOn: p.PromotedOn,
	}
	if p.PromotedToSection != nil {
		p.PromotedTo.Section = *p.PromotedToSection
	}
}

type Progression struct {
	Student *Student          `json:"student"`
	History []*ProgressionRow `json:"history"`
}

type Dashboard struct {
	TotalStudents  int     `json:"total_students" db:"total_students"`
	TotalTeachers  int     `json:"total_teachers" db:"total_teachers"`
	TotalClasses   int     `json:"total_classes" db:"total_classes"`
	PresentToday   int     `json:"present_today" db:"present_today"`
	AttendanceRate float64 `json:"attendance_rate" db:"-"`
	FeeCollected   float64 `json:"fee_collected" db:"fee_collected"`
	PendingFees    float64 `json:"pending_fees" db:"pending_fees"`
}
