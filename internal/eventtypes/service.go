package eventtypes

import (
	"context"
	"strings"

	"github.com/troopbase/troopbase/internal/notify"
	"github.com/troopbase/troopbase/internal/shared"
)

// Service handles event type business logic.
type Service struct {
	repo     RepositoryPort
	notifier *notify.Notifier
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, notifier *notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// List returns all event types.
func (s *Service) List(ctx context.Context) ([]EventType, error) {
	return s.repo.List(ctx)
}

// Get fetches an event type by ID.
func (s *Service) Get(ctx context.Context, id int64) (EventType, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a new event type.
func (s *Service) Create(ctx context.Context, name, description string) (EventType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return EventType{}, shared.ErrConstraint
	}
	et, err := s.repo.Create(ctx, name, strings.TrimSpace(description))
	if err != nil {
		return EventType{}, err
	}
	s.notifier.Notify(ctx, notify.OpEventTypeCreate, et)
	return et, nil
}

// Update changes an existing event type.
func (s *Service) Update(ctx context.Context, id int64, name, description string) (EventType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return EventType{}, shared.ErrConstraint
	}
	et, err := s.repo.Update(ctx, id, name, strings.TrimSpace(description))
	if err != nil {
		return EventType{}, err
	}
	s.notifier.Notify(ctx, notify.OpEventTypeUpdate, et)
	return et, nil
}

// Delete removes an event type; permission rows and events of the type go
// with it via the store's cascade.
func (s *Service) Delete(ctx context.Context, id int64) (EventType, error) {
	et, err := s.repo.Delete(ctx, id)
	if err != nil {
		return EventType{}, err
	}
	s.notifier.Notify(ctx, notify.OpEventTypeDelete, et)
	return et, nil
}
