package library

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/edumaster/internal/transport"
)

type ServiceAPI interface {
	ListBooks(ctx context.Context, filter BookFilter) ([]*Book, error)
	CreateBook(ctx context.Context, req CreateBookRequest) (*Book, error)
	Issue(ctx context.Context, req IssueRequest) (*Issue, error)
	Return(ctx context.Context, issueID int64) (*Issue, error)
	ListIssues(ctx context.Context, filter IssueFilter) ([]*Issue, error)
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

func (h *Handler) GetBooks(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.PageParams(r)
	filter := BookFilter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Limit:    limit,
		Offset:   offset,
	}
	books, err := h.Service.ListBooks(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, BooksResponse{Books: books, Count: len(books)})
}

func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	b, err := h.Service.CreateBook(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) IssueBook(w http.ResponseWriter, r *http.Request) {
	var req IssueRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	issue, err := h.Service.Issue(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, issue)
}

func (h *Handler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	issue, err := h.Service.Return(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, issue)
}

func (h *Handler) GetIssues(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.OptionalInt64Query(r, "book")
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
	filter := IssueFilter{
		BookID:    bookID,
		StudentID: studentID,
		Status:    strings.TrimSpace(r.URL.Query().Get("status")),
		Limit:     limit,
		Offset:    offset,
	}
	issues, err := h.Service.ListIssues(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, IssuesResponse{Issues: issues, Count: len(issues)})
}
