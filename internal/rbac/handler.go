package rbac

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/troopbase/troopbase/internal/notify"
	"github.com/troopbase/troopbase/internal/platform/httpx"
	"github.com/troopbase/troopbase/internal/shared"
)

// AssignRequest is the payload for granting a role to a user.
type AssignRequest struct {
	RoleID int64 `json:"role_id" validate:"required,gt=0"`
}

// Handler exposes the administrative role assignment endpoints and the
// per-user visibility listing.
type Handler struct {
	logger      *slog.Logger
	assignments AssignmentManager
	resolver    *Resolver
	notifier    *notify.Notifier
	validator   *validator.Validate
	middleware  Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, assignments AssignmentManager, resolver *Resolver, notifier *notify.Notifier, middleware Middleware) *Handler {
	return &Handler{
		logger:      logger,
		assignments: assignments,
		resolver:    resolver,
		notifier:    notifier,
		validator:   validator.New(),
		middleware:  middleware,
	}
}

// MountAdminRoutes registers the assignment routes under an admin prefix.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.middleware.RequireRole("admin"))
		r.Get("/users/{userID}/roles", h.listRoles)
		r.Post("/users/{userID}/roles", h.assign)
		r.Delete("/users/{userID}/roles/{roleID}", h.remove)
	})
}

// MountMeRoutes registers the self-service visibility route.
func (h *Handler) MountMeRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.middleware.RequireAuth)
		r.Get("/event-types", h.visibleEventTypes)
	})
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.parseID(w, r, "userID")
	if !ok {
		return
	}
	assigned, err := h.assignments.RolesForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("list user roles", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, assigned)
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.parseID(w, r, "userID")
	if !ok {
		return
	}
	var req AssignRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	asn, err := h.assignments.Assign(r.Context(), userID, req.RoleID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.notifier.Notify(r.Context(), notify.OpUserRoleAssign, asn)
	httpx.JSON(w, http.StatusCreated, asn)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.parseID(w, r, "userID")
	if !ok {
		return
	}
	roleID, ok := h.parseID(w, r, "roleID")
	if !ok {
		return
	}
	asn, err := h.assignments.Remove(r.Context(), userID, roleID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.notifier.Notify(r.Context(), notify.OpUserRoleRemove, asn)
	httpx.JSON(w, http.StatusOK, asn)
}

func (h *Handler) visibleEventTypes(w http.ResponseWriter, r *http.Request) {
	viewerID := shared.SessionFromContext(r.Context()).User()
	ids, err := h.resolver.VisibleEventTypes(r.Context(), viewerID)
	if err != nil {
		h.logger.Error("resolve visible event types", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string][]int64{"event_type_ids": ids})
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid "+param)
		return 0, false
	}
	return id, true
}
