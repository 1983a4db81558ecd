package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/troopbase/troopbase/internal/auth"
	"github.com/troopbase/troopbase/internal/events"
	"github.com/troopbase/troopbase/internal/eventtypes"
	"github.com/troopbase/troopbase/internal/observability"
	"github.com/troopbase/troopbase/internal/permissions"
	"github.com/troopbase/troopbase/internal/rbac"
	"github.com/troopbase/troopbase/internal/roles"
	"github.com/troopbase/troopbase/internal/shared"
	"github.com/troopbase/troopbase/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SessionManager     *shared.SessionManager
	AuthHandler        *auth.Handler
	UsersHandler       *users.Handler
	RolesHandler       *roles.Handler
	EventTypesHandler  *eventtypes.Handler
	EventsHandler      *events.Handler
	PermissionsHandler *permissions.Handler
	RBACHandler        *rbac.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/users", params.UsersHandler.MountRoutes)
	r.Route("/roles", params.RolesHandler.MountRoutes)
	r.Route("/event-types", params.EventTypesHandler.MountRoutes)
	r.Route("/events", params.EventsHandler.MountRoutes)
	r.Route("/permissions", params.PermissionsHandler.MountRoutes)
	r.Route("/admin", params.RBACHandler.MountAdminRoutes)
	r.Route("/me", params.RBACHandler.MountMeRoutes)

	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	return r
}
