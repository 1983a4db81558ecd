package rbac

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/troopbase/troopbase/internal/permissions"
	"github.com/troopbase/troopbase/internal/shared"
)

// DecisionRecorder receives the outcome of every authorization check, e.g.
// to feed a metrics counter.
type DecisionRecorder func(action Action, granted bool)

// Engine decides whether a principal may perform an action on an event type.
type Engine struct {
	roles    RoleSource
	perms    PermissionSource
	recorder DecisionRecorder
	logger   *slog.Logger
}

// NewEngine constructs an Engine. recorder may be nil.
func NewEngine(roles RoleSource, perms PermissionSource, recorder DecisionRecorder, logger *slog.Logger) *Engine {
	return &Engine{roles: roles, perms: perms, recorder: recorder, logger: logger}
}

// Authorize grants when any of the principal's roles carries the action's
// flag for the event type. The per-role flags combine by logical OR and the
// scan short-circuits on the first grant. A role without a permission row
// for the event type contributes nothing; a principal without roles is
// denied outright. Denial is shared.ErrPermissionDenied; an action outside
// {see, edit, add} is a programming error and returns a distinct loud error
// rather than a silent deny.
func (e *Engine) Authorize(ctx context.Context, principalID, eventTypeID int64, action Action) error {
	if !action.Valid() {
		return fmt.Errorf("rbac: unknown action %q", action)
	}

	assigned, err := e.roles.RolesForUser(ctx, principalID)
	if err != nil {
		return err
	}

	for _, role := range assigned {
		perm, ok, err := e.perms.Find(ctx, role.ID, eventTypeID)
		if err != nil {
			return err
		}
		if ok && allows(perm, action) {
			e.record(action, true)
			return nil
		}
	}

	e.record(action, false)
	if e.logger != nil {
		e.logger.Debug("authorization denied",
			slog.Int64("principal", principalID),
			slog.Int64("event_type", eventTypeID),
			slog.String("action", string(action)))
	}
	return fmt.Errorf("%w: %s on event type %d", shared.ErrPermissionDenied, action, eventTypeID)
}

func (e *Engine) record(action Action, granted bool) {
	if e.recorder != nil {
		e.recorder(action, granted)
	}
}

func allows(p permissions.Permission, action Action) bool {
	switch action {
	case ActionSee:
		return p.CanSee
	case ActionEdit:
		return p.CanEdit
	case ActionAdd:
		return p.CanAdd
	}
	return false
}
