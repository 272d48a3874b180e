// Package schoolclass manages classes and their student rosters.
package schoolclass

import (
	"time"

	classDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/schoolclass"
)

type Class struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Grade          int       `json:"grade"`
	Section        string    `json:"section,omitempty"`
	SessionID      *int64    `json:"session_id,omitempty"`
	ClassTeacherID *int64    `json:"class_teacher_id,omitempty"`
	Room           string    `json:"room,omitempty"`
	Capacity       int       `json:"capacity"`
	IsActive       bool      `json:"is_active"`
	Students       []int64   `json:"students"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromDataModel(c *classDatamodel.Class, roster []int64) *Class {
	if roster == nil {
		roster = []int64{}
	}
	return &Class{
		ID:             c.ID,
		Name:           c.Name,
		Grade:          c.Grade,
		Section:        c.Section,
		SessionID:      c.SessionID,
		ClassTeacherID: c.ClassTeacherID,
		Room:           c.Room,
		Capacity:       c.Capacity,
		IsActive:       c.IsActive,
		Students:       roster,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
