// Package rbac implements the role-based access control core: the user-role
// assignment manager, the authorization engine aggregating capability flags
// across roles, and the event-type visibility resolver.
package rbac

import (
	"context"
	"time"

	"github.com/troopbase/troopbase/internal/permissions"
	"github.com/troopbase/troopbase/internal/roles"
)

// Action enumerates the operations the permission matrix controls.
type Action string

const (
	ActionSee  Action = "see"
	ActionEdit Action = "edit"
	ActionAdd  Action = "add"
)

// Valid reports whether the action is one of the three known values.
func (a Action) Valid() bool {
	switch a {
	case ActionSee, ActionEdit, ActionAdd:
		return true
	}
	return false
}

// Assignment links a user to a role.
type Assignment struct {
	UserID    int64     `json:"user_id"`
	RoleID    int64     `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleSource resolves the roles assigned to a user. A user with no roles
// yields an empty slice, not an error.
type RoleSource interface {
	RolesForUser(ctx context.Context, userID int64) ([]roles.Role, error)
}

// PermissionSource provides the capability rows the engine aggregates.
type PermissionSource interface {
	Find(ctx context.Context, roleID, eventTypeID int64) (permissions.Permission, bool, error)
	EventTypeIDsForRole(ctx context.Context, roleID int64) ([]int64, error)
}
