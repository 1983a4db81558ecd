package rbac

import "context"

// Resolver computes the full set of event types a principal may see. It
// performs the same role-permission aggregation as the Engine but across
// every event type, for listing endpoints.
type Resolver struct {
	roles RoleSource
	perms PermissionSource
}

// NewResolver constructs a Resolver.
func NewResolver(roles RoleSource, perms PermissionSource) *Resolver {
	return &Resolver{roles: roles, perms: perms}
}

// VisibleEventTypes returns the deduplicated identifiers of every event type
// for which at least one of the principal's roles has a can_see row. The
// result carries no ordering guarantee.
func (r *Resolver) VisibleEventTypes(ctx context.Context, principalID int64) ([]int64, error) {
	assigned, err := r.roles.RolesForUser(ctx, principalID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	visible := make([]int64, 0)
	for _, role := range assigned {
		typeIDs, err := r.perms.EventTypeIDsForRole(ctx, role.ID)
		if err != nil {
			return nil, err
		}
		for _, typeID := range typeIDs {
			if _, dup := seen[typeID]; dup {
				continue
			}
			perm, ok, err := r.perms.Find(ctx, role.ID, typeID)
			if err != nil {
				return nil, err
			}
			if ok && perm.CanSee {
				seen[typeID] = struct{}{}
				visible = append(visible, typeID)
			}
		}
	}
	return visible, nil
}
