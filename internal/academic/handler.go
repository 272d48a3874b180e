package academic

import (
	"context"
	"net/http"

	"github.com/frahmantamala/edumaster/internal/transport"
)

type ServiceAPI interface {
	ListSessions(ctx context.Context) ([]*Session, error)
	GetSession(ctx context.Context, id int64) (*Session, error)
	GetCurrentSession(ctx context.Context) (*Session, error)
	CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error)
	UpdateSession(ctx context.Context, id int64, req UpdateSessionRequest) (*Session, error)
	SetCurrent(ctx context.Context, id int64) (*Session, error)
	Close(ctx context.Context, id int64) (*Session, error)
	ListHistory(ctx context.Context, studentID int64) ([]*History, error)
	GetHistory(ctx context.Context, studentID, sessionID int64) (*History, error)
	CreateHistory(ctx context.Context, studentID int64, req CreateHistoryRequest) (*History, error)
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

func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Service.ListSessions(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, SessionsResponse{Sessions: sessions, Count: len(sessions)})
}

func (h *Handler) GetCurrentSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.GetCurrentSession(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	s, err := h.Service.GetSession(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	s, err := h.Service.CreateSession(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, s)
}

func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var req UpdateSessionRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	s, err := h.Service.UpdateSession(r.Context(), id, req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) SetCurrentSession(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	s, err := h.Service.SetCurrent(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	s, err := h.Service.Close(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) GetStudentHistory(w http.ResponseWriter, r *http.Request) {
	studentID, err := h.ParseIDParam(r, "studentId")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	history, err := h.Service.ListHistory(r.Context(), studentID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, HistoryResponse{History: history, Count: len(history)})
}

func (h *Handler) GetStudentSessionHistory(w http.ResponseWriter, r *http.Request) {
	studentID, err := h.ParseIDParam(r, "studentId")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	sessionID, err := h.ParseIDParam(r, "sessionId")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	history, err := h.Service.GetHistory(r.Context(), studentID, sessionID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, history)
}

func (h *Handler) CreateStudentHistory(w http.ResponseWriter, r *http.Request) {
	studentID, err := h.ParseIDParam(r, "studentId")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var req CreateHistoryRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	history, err := h.Service.CreateHistory(r.Context(), studentID, req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, history)
}
