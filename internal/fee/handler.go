package fee

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/edumaster/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Fee, error)
	Create(ctx context.Context, req CreateRequest) (*Fee, error)
	Pay(ctx context.Context, id int64, req PayRequest) (*Fee, error)
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

func (h *Handler) GetFees(w http.ResponseWriter, r *http.Request) {
	studentID, err := h.OptionalInt64Query(r, "student")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	limit, offset := h.PageParams(r)
	filter := ListFilter{
		StudentID:    studentID,
		Status:       strings.TrimSpace(r.URL.Query().Get("status")),
		AcademicYear: strings.TrimSpace(r.URL.Query().Get("academicYear")),
		Limit:        limit,
		Offset:       offset,
	}
	fees, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, FeesResponse{Fees: fees, Count: len(fees)})
}

func (h *Handler) CreateFee(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	f, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, f)
}

func (h *Handler) PayFee(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var req PayRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	f, err := h.Service.Pay(r.Context(), id, req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, f)
}
