package permissions

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/troopbase/troopbase/internal/platform/httpx"
	"github.com/troopbase/troopbase/internal/rbac"
)

// Handler exposes the permission matrix. The whole surface is
// administrative.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
	rbac      rbac.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
		rbac:      rbac,
	}
}

// MountRoutes registers permission routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireRole("admin"))
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/roles/{roleID}", h.listByRole)
		r.Get("/event-types/{eventTypeID}", h.listByEventType)
		r.Get("/roles/{roleID}/event-types/{eventTypeID}", h.get)
		r.Put("/roles/{roleID}/event-types/{eventTypeID}", h.update)
		r.Delete("/roles/{roleID}/event-types/{eventTypeID}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list permissions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) listByRole(w http.ResponseWriter, r *http.Request) {
	roleID, ok := h.parseID(w, r, "roleID")
	if !ok {
		return
	}
	list, err := h.service.ListByRole(r.Context(), roleID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) listByEventType(w http.ResponseWriter, r *http.Request) {
	eventTypeID, ok := h.parseID(w, r, "eventTypeID")
	if !ok {
		return
	}
	list, err := h.service.ListByEventType(r.Context(), eventTypeID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	roleID, eventTypeID, ok := h.parsePair(w, r)
	if !ok {
		return
	}
	p, err := h.service.Get(r.Context(), roleID, eventTypeID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req PermissionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p, err := h.service.Create(r.Context(), req.RoleID, req.EventTypeID, Flags{
		CanSee:  req.CanSee,
		CanEdit: req.CanEdit,
		CanAdd:  req.CanAdd,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	roleID, eventTypeID, ok := h.parsePair(w, r)
	if !ok {
		return
	}
	var req FlagsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	p, err := h.service.Update(r.Context(), roleID, eventTypeID, FlagsPatch{
		CanSee:  req.CanSee,
		CanEdit: req.CanEdit,
		CanAdd:  req.CanAdd,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	roleID, eventTypeID, ok := h.parsePair(w, r)
	if !ok {
		return
	}
	p, err := h.service.Delete(r.Context(), roleID, eventTypeID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) parsePair(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	roleID, ok := h.parseID(w, r, "roleID")
	if !ok {
		return 0, 0, false
	}
	eventTypeID, ok := h.parseID(w, r, "eventTypeID")
	if !ok {
		return 0, 0, false
	}
	return roleID, eventTypeID, true
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid "+param)
		return 0, false
	}
	return id, true
}
