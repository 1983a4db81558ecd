package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/troopbase/troopbase/internal/notify"
	"github.com/troopbase/troopbase/internal/rbac"
	"github.com/troopbase/troopbase/internal/shared"
)

// Service handles event business logic. Every operation runs through the
// authorization engine: creating an event needs the add capability on its
// event type, reading needs see, and updating or deleting needs edit.
//
// A viewer without see on an event's type gets shared.ErrNotFound rather
// than a denial, so the existence of events in invisible types never leaks.
// An edit denial is only reported as such to viewers who can already see
// the event.
type Service struct {
	repo     RepositoryPort
	engine   *rbac.Engine
	resolver *rbac.Resolver
	notifier *notify.Notifier
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, engine *rbac.Engine, resolver *rbac.Resolver, notifier *notify.Notifier) *Service {
	return &Service{repo: repo, engine: engine, resolver: resolver, notifier: notifier}
}

// ListVisible returns every event whose type the viewer can see.
func (s *Service) ListVisible(ctx context.Context, viewerID int64) ([]Event, error) {
	typeIDs, err := s.resolver.VisibleEventTypes(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByEventTypeIDs(ctx, typeIDs)
}

// Get fetches an event if the viewer can see its type.
func (s *Service) Get(ctx context.Context, viewerID, id int64) (Event, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if err := s.requireSee(ctx, viewerID, e.EventTypeID, id); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Create inserts a new event on behalf of the viewer.
func (s *Service) Create(ctx context.Context, viewerID int64, e Event) (Event, error) {
	if err := validate(e); err != nil {
		return Event{}, err
	}
	if err := s.engine.Authorize(ctx, viewerID, e.EventTypeID, rbac.ActionAdd); err != nil {
		return Event{}, err
	}
	e.CreatedBy = viewerID
	out, err := s.repo.Create(ctx, e)
	if err != nil {
		return Event{}, err
	}
	s.notifier.Notify(ctx, notify.OpEventCreate, out)
	return out, nil
}

// Update rewrites an existing event. Moving an event to a different type
// additionally requires edit on the target type.
func (s *Service) Update(ctx context.Context, viewerID int64, e Event) (Event, error) {
	if err := validate(e); err != nil {
		return Event{}, err
	}
	current, err := s.repo.Get(ctx, e.ID)
	if err != nil {
		return Event{}, err
	}
	if err := s.requireSee(ctx, viewerID, current.EventTypeID, e.ID); err != nil {
		return Event{}, err
	}
	if err := s.engine.Authorize(ctx, viewerID, current.EventTypeID, rbac.ActionEdit); err != nil {
		return Event{}, err
	}
	if e.EventTypeID != current.EventTypeID {
		if err := s.engine.Authorize(ctx, viewerID, e.EventTypeID, rbac.ActionEdit); err != nil {
			return Event{}, err
		}
	}
	out, err := s.repo.Update(ctx, e)
	if err != nil {
		return Event{}, err
	}
	s.notifier.Notify(ctx, notify.OpEventUpdate, out)
	return out, nil
}

// Delete removes an event.
func (s *Service) Delete(ctx context.Context, viewerID, id int64) (Event, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if err := s.requireSee(ctx, viewerID, current.EventTypeID, id); err != nil {
		return Event{}, err
	}
	if err := s.engine.Authorize(ctx, viewerID, current.EventTypeID, rbac.ActionEdit); err != nil {
		return Event{}, err
	}
	out, err := s.repo.Delete(ctx, id)
	if err != nil {
		return Event{}, err
	}
	s.notifier.Notify(ctx, notify.OpEventDelete, out)
	return out, nil
}

// requireSee collapses a see denial into not-found so the caller cannot
// distinguish an invisible event from a missing one.
func (s *Service) requireSee(ctx context.Context, viewerID, eventTypeID, eventID int64) error {
	err := s.engine.Authorize(ctx, viewerID, eventTypeID, rbac.ActionSee)
	if err == nil {
		return nil
	}
	if errors.Is(err, shared.ErrPermissionDenied) {
		return fmt.Errorf("%w: event %d", shared.ErrNotFound, eventID)
	}
	return err
}

func validate(e Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", shared.ErrConstraint)
	}
	if e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("%w: end date precedes start date", shared.ErrConstraint)
	}
	return nil
}
