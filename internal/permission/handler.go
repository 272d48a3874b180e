package permission

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/edumaster/internal/transport"
)

type ServiceAPI interface {
	GetAll(ctx context.Context) ([]*Permission, error)
	GetByModule(ctx context.Context, module string) ([]*Permission, error)
	Create(ctx context.Context, req CreateRequest) (*Permission, error)
	BulkCreate(ctx context.Context, req BulkCreateRequest) ([]*Permission, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Permission, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("GetPermissions: failed to list permissions", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, PermissionsResponse{Permissions: perms})
}

func (h *Handler) GetPermissionsByModule(w http.ResponseWriter, r *http.Request) {
	module := chi.URLParam(r, "module")
	perms, err := h.Service.GetByModule(r.Context(), module)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, PermissionsResponse{Permissions: perms})
}

func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	perm, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, perm)
}

func (h *Handler) BulkCreatePermissions(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	perms, err := h.Service.BulkCreate(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, PermissionsResponse{Permissions: perms})
}

func (h *Handler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var req UpdateRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	perm, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, perm)
}

func (h *Handler) DeletePermission(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeletePermission: failed", "permission_id", id, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Permission deleted successfully"})
}
