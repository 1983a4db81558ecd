package eventtypes

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troopbase/troopbase/internal/shared"
)

type mockRepository struct {
	types  map[int64]EventType
	nextID int64
}

func newMockRepository(seed ...EventType) *mockRepository {
	repo := &mockRepository{types: make(map[int64]EventType), nextID: 1}
	for _, et := range seed {
		repo.types[et.ID] = et
		if et.ID >= repo.nextID {
			repo.nextID = et.ID + 1
		}
	}
	return repo
}

func (m *mockRepository) List(_ context.Context) ([]EventType, error) {
	list := make([]EventType, 0, len(m.types))
	for _, et := range m.types {
		list = append(list, et)
	}
	return list, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (EventType, error) {
	et, ok := m.types[id]
	if !ok {
		return EventType{}, shared.ErrNotFound
	}
	return et, nil
}

func (m *mockRepository) Create(_ context.Context, name, description string) (EventType, error) {
	for _, et := range m.types {
		if et.Name == name {
			return EventType{}, fmt.Errorf("%w: event_types_name_key", shared.ErrAlreadyExists)
		}
	}
	et := EventType{ID: m.nextID, Name: name, Description: description}
	m.nextID++
	m.types[et.ID] = et
	return et, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, name, description string) (EventType, error) {
	et, ok := m.types[id]
	if !ok {
		return EventType{}, shared.ErrNotFound
	}
	et.Name = name
	et.Description = description
	m.types[id] = et
	return et, nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) (EventType, error) {
	et, ok := m.types[id]
	if !ok {
		return EventType{}, shared.ErrNotFound
	}
	delete(m.types, id)
	return et, nil
}

var _ RepositoryPort = (*mockRepository)(nil)

func TestCreateTrimsFields(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	et, err := svc.Create(context.Background(), "  scout_event ", " Weekly activities ")

	require.NoError(t, err)
	assert.Equal(t, "scout_event", et.Name)
	assert.Equal(t, "Weekly activities", et.Description)
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	_, err := svc.Create(context.Background(), "  ", "whatever")

	assert.ErrorIs(t, err, shared.ErrConstraint)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc := NewService(newMockRepository(EventType{ID: 1, Name: "scout_event"}), nil)

	_, err := svc.Create(context.Background(), "scout_event", "")

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestUpdateMissingType(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	_, err := svc.Update(context.Background(), 9, "renamed", "")

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteReturnsRemovedType(t *testing.T) {
	svc := NewService(newMockRepository(EventType{ID: 1, Name: "scout_event"}), nil)

	et, err := svc.Delete(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "scout_event", et.Name)
}
