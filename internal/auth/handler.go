package auth

import (
	"context"
	"net/http"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/transport"
	"github.com/frahmantamala/edumaster/pkg/logger"
)

type ServiceAPI interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*User, error)
	Me(ctx context.Context, principal *User) (*MeResponse, error)
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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp, err := h.Service.Login(r.Context(), req)
	if err != nil {
		h.Logger.Warn("authentication failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp, err := h.Service.Register(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrNotAuthenticated)
		return
	}
	resp, err := h.Service.Me(r.Context(), principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// CheckPermission answers from the set resolved by AuthMiddleware.
func (h *Handler) CheckPermission(w http.ResponseWriter, r *http.Request) {
	principal, ok := UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrNotAuthenticated)
		return
	}
	var req CheckPermissionRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, CheckPermissionResponse{
		HasPermission: principal.HasPermission(req.Permission),
		Permission:    req.Permission,
	})
}

// AuthMiddleware resolves the principal once per request and stores it in
// the context; later permission checks never go back to the store.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)

		principal, err := h.Service.Authenticate(r.Context(), token)
		if err != nil {
			h.Logger.Debug("auth middleware: rejected request", "path", r.URL.Path, "error", err)
			h.WriteError(w, http.StatusUnauthorized, internal.ErrNotAuthenticated.Message)
			return
		}

		ctx := ContextWithUser(r.Context(), principal)
		ctx = logger.WithUser(ctx, principal.ID, principal.RoleName)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
