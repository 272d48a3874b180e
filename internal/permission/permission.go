package permission

import (
	"fmt"
	"time"

	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
)

const (
	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionManage  = "manage"
	ActionViewOwn = "view_own"
	ActionViewAll = "view_all"
)

var Actions = []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage, ActionViewOwn, ActionViewAll}

var Modules = []string{
	"students", "teachers", "classes", "subjects", "attendance", "exams", "results",
	"fees", "library", "transport", "hostel", "timetable", "notices", "events",
	"messages", "expenses", "reports", "settings", "users", "dashboard", "payroll",
	"inventory", "accounts", "roles", "permissions", "sessions", "promotions", "transfers",
}

// Code builds the "<module>.<action>" permission code.
func Code(module, action string) string {
	return module + "." + action
}

func IsKnownModule(module string) bool {
	for _, m := range Modules {
		if m == module {
			return true
		}
	}
	return false
}

func IsKnownAction(action string) bool {
	for _, a := range Actions {
		if a == action {
			return true
		}
	}
	return false
}

type Permission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Module      string    `json:"module"`
	Action      string    `json:"action"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultName renders a readable label such as "Students Read".
func DefaultName(module, action string) string {
	return fmt.Sprintf("%s %s", title(module), title(action))
}

func title(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	for i := range b {
		if b[i] == '_' {
			b[i] = ' '
		}
	}
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

func ToDataModel(p *Permission) *userDatamodel.Permission {
	return &userDatamodel.Permission{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		Module:      p.Module,
		Action:      p.Action,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromDataModel(p *userDatamodel.Permission) *Permission {
	return &Permission{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		Module:      p.Module,
		Action:      p.Action,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromDataModels(ps []userDatamodel.Permission) []*Permission {
	out := make([]*Permission, 0, len(ps))
	for i := range ps {
		out = append(out, FromDataModel(&ps[i]))
	}
	return out
}

// CodesOf extracts the codes of gorm permission rows.
func CodesOf(ps []userDatamodel.Permission) []string {
	codes := make([]string, 0, len(ps))
	for _, p := range ps {
		codes = append(codes, p.Code)
	}
	return codes
}
