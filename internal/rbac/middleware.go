package rbac

import (
	"log/slog"
	"net/http"

	"github.com/troopbase/troopbase/internal/platform/httpx"
	"github.com/troopbase/troopbase/internal/shared"
)

// Middleware wires authentication and role gates for HTTP handlers.
type Middleware struct {
	Assignments AssignmentManager
	Logger      *slog.Logger
}

// RequireAuth rejects requests whose session carries no authenticated user.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shared.SessionFromContext(r.Context()).User() == 0 {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the current user holds the named role. Used for the
// administrative surface; capability checks on event types go through the
// Engine instead.
func (m Middleware) RequireRole(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := shared.SessionFromContext(r.Context()).User()
			if userID == 0 {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
				return
			}
			assigned, err := m.Assignments.RolesForUser(r.Context(), userID)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("resolve roles", slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			for _, role := range assigned {
				if role.Name == name {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "missing role "+name)
		})
	}
}
