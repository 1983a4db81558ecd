package permissions

import (
	"context"
	"fmt"

	"github.com/troopbase/troopbase/internal/notify"
	"github.com/troopbase/troopbase/internal/shared"
)

// Service handles permission matrix business logic.
type Service struct {
	repo     RepositoryPort
	notifier *notify.Notifier
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, notifier *notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// List returns the full permission matrix.
func (s *Service) List(ctx context.Context) ([]Permission, error) {
	return s.repo.List(ctx)
}

// ListByRole returns the grants held by a single role.
func (s *Service) ListByRole(ctx context.Context, roleID int64) ([]Permission, error) {
	return s.repo.ListByRole(ctx, roleID)
}

// ListByEventType returns the grants referencing a single event type.
func (s *Service) ListByEventType(ctx context.Context, eventTypeID int64) ([]Permission, error) {
	return s.repo.ListByEventType(ctx, eventTypeID)
}

// Get fetches the grant for a (role, event type) pair.
func (s *Service) Get(ctx context.Context, roleID, eventTypeID int64) (Permission, error) {
	p, ok, err := s.repo.Find(ctx, roleID, eventTypeID)
	if err != nil {
		return Permission{}, err
	}
	if !ok {
		return Permission{}, fmt.Errorf("%w: no permission for role %d on event type %d", shared.ErrNotFound, roleID, eventTypeID)
	}
	return p, nil
}

// Create grants a role capabilities on an event type. Granting twice for the
// same pair fails with shared.ErrAlreadyExists; a grant referencing a
// missing role or event type fails with shared.ErrConstraint.
func (s *Service) Create(ctx context.Context, roleID, eventTypeID int64, flags Flags) (Permission, error) {
	p, err := s.repo.Create(ctx, roleID, eventTypeID, flags)
	if err != nil {
		return Permission{}, err
	}
	s.notifier.Notify(ctx, notify.OpPermissionCreate, p)
	return p, nil
}

// Update merges the patch over the existing grant's flags; flags absent
// from the patch keep their stored value.
func (s *Service) Update(ctx context.Context, roleID, eventTypeID int64, patch FlagsPatch) (Permission, error) {
	current, err := s.Get(ctx, roleID, eventTypeID)
	if err != nil {
		return Permission{}, err
	}
	p, err := s.repo.Update(ctx, roleID, eventTypeID, patch.apply(Flags{
		CanSee:  current.CanSee,
		CanEdit: current.CanEdit,
		CanAdd:  current.CanAdd,
	}))
	if err != nil {
		return Permission{}, err
	}
	s.notifier.Notify(ctx, notify.OpPermissionUpdate, p)
	return p, nil
}

// Delete revokes a grant. Events under the event type are untouched; they
// simply become invisible to the role's members.
func (s *Service) Delete(ctx context.Context, roleID, eventTypeID int64) (Permission, error) {
	p, err := s.repo.Delete(ctx, roleID, eventTypeID)
	if err != nil {
		return Permission{}, err
	}
	s.notifier.Notify(ctx, notify.OpPermissionDelete, p)
	return p, nil
}
