package promotion

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/edumaster/internal/transport"
)

type ServiceAPI interface {
	Bulk(ctx context.Context, req BulkRequest) (*BulkResult, error)
	Single(ctx context.Context, req SingleRequest) (*SingleResponse, error)
	Graduate(ctx context.Context, req GraduateRequest) (*GraduationResult, error)
	CreateRequest(ctx context.Context, req CreateRequest) (*Request, error)
	ListRequests(ctx context.Context, filter ListFilter) ([]*Request, error)
	CreateTransfer(ctx context.Context, req CreateTransferRequest) (*Transfer, error)
	ListTransfers(ctx context.Context, filter TransferFilter) ([]*Transfer, error)
	ApproveTransfer(ctx context.Context, id int64) (*ApproveResponse, error)
	Certificate(ctx context.Context, id int64) (*Certificate, error)
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

func (h *Handler) BulkPromote(w http.ResponseWriter, r *http.Request) {
	var req BulkRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	result, err := h.Service.Bulk(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) PromoteSingle(w http.ResponseWriter, r *http.Request) {
	var req SingleRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	resp, err := h.Service.Single(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Graduate(w http.ResponseWriter, r *http.Request) {
	var req GraduateRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	result, err := h.Service.Graduate(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	p, err := h.Service.CreateRequest(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.OptionalInt64Query(r, "session")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	limit, offset := h.PageParams(r)
	filter := ListFilter{
		SessionID: sessionID,
		Status:    strings.TrimSpace(r.URL.Query().Get("status")),
		Limit:     limit,
		Offset:    offset,
	}
	promotions, err := h.Service.ListRequests(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, RequestsResponse{Promotions: promotions, Count: len(promotions)})
}

func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req CreateTransferRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	t, err := h.Service.CreateTransfer(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) GetTransfers(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.PageParams(r)
	filter := TransferFilter{
		Status:      strings.TrimSpace(r.URL.Query().Get("status")),
		RequestType: strings.TrimSpace(r.URL.Query().Get("type")),
		Limit:       limit,
		Offset:      offset,
	}
	transfers, err := h.Service.ListTransfers(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, TransfersResponse{Transfers: transfers, Count: len(transfers)})
}

func (h *Handler) ApproveTransfer(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	resp, err := h.Service.ApproveTransfer(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	cert, err := h.Service.Certificate(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, cert)
}
