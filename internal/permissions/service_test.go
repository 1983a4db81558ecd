package permissions

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troopbase/troopbase/internal/shared"
)

type mockRepository struct {
	rows map[[2]int64]Permission
}

func newMockRepository() *mockRepository {
	return &mockRepository{rows: make(map[[2]int64]Permission)}
}

func (m *mockRepository) List(_ context.Context) ([]Permission, error) {
	list := make([]Permission, 0, len(m.rows))
	for _, p := range m.rows {
		list = append(list, p)
	}
	return list, nil
}

func (m *mockRepository) ListByRole(_ context.Context, roleID int64) ([]Permission, error) {
	list := make([]Permission, 0)
	for key, p := range m.rows {
		if key[0] == roleID {
			list = append(list, p)
		}
	}
	return list, nil
}

func (m *mockRepository) ListByEventType(_ context.Context, eventTypeID int64) ([]Permission, error) {
	list := make([]Permission, 0)
	for key, p := range m.rows {
		if key[1] == eventTypeID {
			list = append(list, p)
		}
	}
	return list, nil
}

func (m *mockRepository) Find(_ context.Context, roleID, eventTypeID int64) (Permission, bool, error) {
	p, ok := m.rows[[2]int64{roleID, eventTypeID}]
	return p, ok, nil
}

func (m *mockRepository) Create(_ context.Context, roleID, eventTypeID int64, flags Flags) (Permission, error) {
	key := [2]int64{roleID, eventTypeID}
	if _, ok := m.rows[key]; ok {
		return Permission{}, fmt.Errorf("%w: role_event_type_permissions_pkey", shared.ErrAlreadyExists)
	}
	p := Permission{RoleID: roleID, EventTypeID: eventTypeID, CanSee: flags.CanSee, CanEdit: flags.CanEdit, CanAdd: flags.CanAdd}
	m.rows[key] = p
	return p, nil
}

func (m *mockRepository) Update(_ context.Context, roleID, eventTypeID int64, flags Flags) (Permission, error) {
	key := [2]int64{roleID, eventTypeID}
	if _, ok := m.rows[key]; !ok {
		return Permission{}, shared.ErrNotFound
	}
	p := Permission{RoleID: roleID, EventTypeID: eventTypeID, CanSee: flags.CanSee, CanEdit: flags.CanEdit, CanAdd: flags.CanAdd}
	m.rows[key] = p
	return p, nil
}

func (m *mockRepository) Delete(_ context.Context, roleID, eventTypeID int64) (Permission, error) {
	key := [2]int64{roleID, eventTypeID}
	p, ok := m.rows[key]
	if !ok {
		return Permission{}, shared.ErrNotFound
	}
	delete(m.rows, key)
	return p, nil
}

func (m *mockRepository) EventTypeIDsForRole(_ context.Context, roleID int64) ([]int64, error) {
	ids := make([]int64, 0)
	for key := range m.rows {
		if key[0] == roleID {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

var _ RepositoryPort = (*mockRepository)(nil)

func TestCreateRejectsDuplicatePair(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	_, err := svc.Create(context.Background(), 1, 2, Flags{CanSee: true})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, 2, Flags{CanSee: true, CanEdit: true})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestGetMissingPair(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	_, err := svc.Get(context.Background(), 1, 2)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateKeepsOmittedFlags(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), 1, 2, Flags{CanSee: true, CanAdd: true})
	require.NoError(t, err)

	yes := true
	p, err := svc.Update(context.Background(), 1, 2, FlagsPatch{CanEdit: &yes})
	require.NoError(t, err)
	assert.True(t, p.CanSee)
	assert.True(t, p.CanEdit)
	assert.True(t, p.CanAdd)
}

func TestUpdateClearsExplicitFalse(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), 1, 2, Flags{CanSee: true, CanEdit: true, CanAdd: true})
	require.NoError(t, err)

	no := false
	p, err := svc.Update(context.Background(), 1, 2, FlagsPatch{CanEdit: &no, CanAdd: &no})
	require.NoError(t, err)
	assert.True(t, p.CanSee)
	assert.False(t, p.CanEdit)
	assert.False(t, p.CanAdd)
}

func TestUpdateMissingPair(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	yes := true
	_, err := svc.Update(context.Background(), 1, 2, FlagsPatch{CanSee: &yes})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteReturnsRevokedGrant(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), 1, 2, Flags{CanSee: true})
	require.NoError(t, err)

	p, err := svc.Delete(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.RoleID)

	_, err = svc.Get(context.Background(), 1, 2)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
