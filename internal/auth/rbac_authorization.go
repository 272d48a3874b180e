package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/transport"
)

// ForbiddenResponse names the permission that was missing.
type ForbiddenResponse struct {
	Error    string `json:"error"`
	Required string `json:"required"`
}

type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: transport.NewBaseHandler(logger)}
}

// Check allows the request when the principal's resolved set grants any of
// the permissions. Without a principal the request is unauthenticated.
func (ra *RBACAuthorization) Check(next http.HandlerFunc, permissions ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			ra.Logger.Warn("authorization check failed: user not found in context")
			ra.WriteError(w, http.StatusUnauthorized, internal.ErrNotAuthenticated.Message)
			return
		}

		if !user.Permissions.HasAny(permissions...) {
			ra.Logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"user_id", user.ID,
				"role", user.RoleName,
				"required_permission", permissions)
			required := ""
			if len(permissions) > 0 {
				required = permissions[0]
			}
			ra.WriteJSON(w, http.StatusForbidden, ForbiddenResponse{
				Error:    internal.ErrAccessDenied.Message,
				Required: required,
			})
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (ra *RBACAuthorization) Middleware(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, permission)
	}
}

// RequireAny passes when at least one of the permissions is granted.
func (ra *RBACAuthorization) RequireAny(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, permissions...)
	}
}
