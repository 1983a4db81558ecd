package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troopbase/troopbase/internal/permissions"
	"github.com/troopbase/troopbase/internal/roles"
)

func TestVisibleEventTypesUnionsAcrossRoles(t *testing.T) {
	rs := &fakeRoleSource{byUser: map[int64][]roles.Role{
		7: {{ID: 1, Name: "committee"}, {ID: 2, Name: "chefassistent"}},
	}}
	rows := map[[2]int64]permissions.Permission{}
	k, p := grant(1, 10, true, true, true)
	rows[k] = p
	k, p = grant(2, 20, true, false, false)
	rows[k] = p
	resolver := NewResolver(rs, &fakePermissionSource{rows: rows})

	visible, err := resolver.VisibleEventTypes(context.Background(), 7)

	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{10, 20}, visible)
}

func TestVisibleEventTypesDeduplicatesOverlap(t *testing.T) {
	rs := &fakeRoleSource{byUser: map[int64][]roles.Role{
		7: {{ID: 1, Name: "committee"}, {ID: 2, Name: "chefassistent"}},
	}}
	rows := map[[2]int64]permissions.Permission{}
	k, p := grant(1, 10, true, true, true)
	rows[k] = p
	k, p = grant(2, 10, true, false, false)
	rows[k] = p
	resolver := NewResolver(rs, &fakePermissionSource{rows: rows})

	visible, err := resolver.VisibleEventTypes(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, visible)
}

func TestVisibleEventTypesSkipsRowsWithoutSee(t *testing.T) {
	rs := &fakeRoleSource{byUser: map[int64][]roles.Role{
		7: {{ID: 1, Name: "committee"}},
	}}
	rows := map[[2]int64]permissions.Permission{}
	k, p := grant(1, 10, false, true, true)
	rows[k] = p
	resolver := NewResolver(rs, &fakePermissionSource{rows: rows})

	visible, err := resolver.VisibleEventTypes(context.Background(), 7)

	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestVisibleEventTypesEmptyForUserWithoutRoles(t *testing.T) {
	resolver := NewResolver(&fakeRoleSource{byUser: map[int64][]roles.Role{}}, &fakePermissionSource{})

	visible, err := resolver.VisibleEventTypes(context.Background(), 99)

	require.NoError(t, err)
	assert.Empty(t, visible)
}
