package audit

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/edumaster/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Activity, error)
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

func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.PageParams(r)
	filter := ListFilter{
		EventType: strings.TrimSpace(r.URL.Query().Get("type")),
		Limit:     limit,
		Offset:    offset,
	}
	activity, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ActivityResponse{Activity: activity, Count: len(activity)})
}
