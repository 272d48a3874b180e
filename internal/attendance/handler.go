package attendance

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/core/common/dates"
	"github.com/frahmantamala/edumaster/internal/transport"
)

type ServiceAPI interface {
	Mark(ctx context.Context, req CreateRequest) (*Record, error)
	List(ctx context.Context, filter ListFilter) ([]*Record, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

func (h *Handler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	record, err := h.Service.Mark(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	records, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, AttendanceResponse{Attendance: records, Count: len(records)})
}

func (h *Handler) parseFilter(r *http.Request) (ListFilter, error) {
	var filter ListFilter
	var err error
	if filter.StudentID, err = h.OptionalInt64Query(r, "student"); err != nil {
		return filter, err
	}
	if filter.ClassID, err = h.OptionalInt64Query(r, "class"); err != nil {
		return filter, err
	}

	start, err := dateQuery(r, "startDate")
	if err != nil {
		return filter, err
	}
	end, err := dateQuery(r, "endDate")
	if err != nil {
		return filter, err
	}
	if start != nil && end != nil {
		filter.StartDate = start
		filter.EndDate = end
	}
	filter.Limit, filter.Offset = h.PageParams(r)
	return filter, nil
}

func dateQuery(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	t, err := dates.Parse(raw)
	if err != nil {
		return nil, internal.NewValidationError("invalid "+key, internal.ErrCodeInvalidDate)
	}
	return &t, nil
}
