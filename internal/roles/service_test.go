package roles

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troopbase/troopbase/internal/shared"
)

type mockRepository struct {
	roles  map[int64]Role
	nextID int64
}

func newMockRepository(seed ...Role) *mockRepository {
	repo := &mockRepository{roles: make(map[int64]Role), nextID: 1}
	for _, r := range seed {
		repo.roles[r.ID] = r
		if r.ID >= repo.nextID {
			repo.nextID = r.ID + 1
		}
	}
	return repo
}

func (m *mockRepository) List(_ context.Context) ([]Role, error) {
	list := make([]Role, 0, len(m.roles))
	for _, r := range m.roles {
		list = append(list, r)
	}
	return list, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	return r, nil
}

func (m *mockRepository) GetByName(_ context.Context, name string) (Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return Role{}, shared.ErrNotFound
}

func (m *mockRepository) Create(_ context.Context, name string) (Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return Role{}, fmt.Errorf("%w: roles_name_key", shared.ErrAlreadyExists)
		}
	}
	r := Role{ID: m.nextID, Name: name}
	m.nextID++
	m.roles[r.ID] = r
	return r, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, name string) (Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	r.Name = name
	m.roles[id] = r
	return r, nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) (Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	delete(m.roles, id)
	return r, nil
}

var _ RepositoryPort = (*mockRepository)(nil)

func TestCreateTrimsName(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	role, err := svc.Create(context.Background(), "  committee  ")

	require.NoError(t, err)
	assert.Equal(t, "committee", role.Name)
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	_, err := svc.Create(context.Background(), "   ")

	assert.ErrorIs(t, err, shared.ErrConstraint)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc := NewService(newMockRepository(Role{ID: 1, Name: "committee"}), nil)

	_, err := svc.Create(context.Background(), "committee")

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestUpdateMissingRole(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	_, err := svc.Update(context.Background(), 5, "renamed")

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteReturnsRemovedRole(t *testing.T) {
	svc := NewService(newMockRepository(Role{ID: 1, Name: "committee"}), nil)

	role, err := svc.Delete(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "committee", role.Name)
}
