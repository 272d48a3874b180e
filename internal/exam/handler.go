package exam

import (
	"context"
	"net/http"

	"github.com/frahmantamala/edumaster/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Exam, error)
	Create(ctx context.Context, req CreateRequest) (*Exam, error)
	ListResults(ctx context.Context, filter ResultFilter) ([]*Result, error)
	CreateResult(ctx context.Context, req CreateResultRequest) (*Result, error)
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

func (h *Handler) GetExams(w http.ResponseWriter, r *http.Request) {
	classID, err := h.OptionalInt64Query(r, "class")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	sessionID, err := h.OptionalInt64Query(r, "session")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	limit, offset := h.PageParams(r)
	exams, err := h.Service.List(r.Context(), ListFilter{ClassID: classID, SessionID: sessionID, Limit: limit, Offset: offset})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ExamsResponse{Exams: exams, Count: len(exams)})
}

func (h *Handler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	e, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	examID, err := h.OptionalInt64Query(r, "exam")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	studentID, err := h.OptionalInt64Query(r, "student")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	limit, offset := h.PageParams(r)
	results, err := h.Service.ListResults(r.Context(), ResultFilter{ExamID: examID, StudentID: studentID, Limit: limit, Offset: offset})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ResultsResponse{Results: results, Count: len(results)})
}

func (h *Handler) CreateResult(w http.ResponseWriter, r *http.Request) {
	var req CreateResultRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	res, err := h.Service.CreateResult(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, res)
}
