package roles

import (
	"context"
	"strings"

	"github.com/troopbase/troopbase/internal/notify"
	"github.com/troopbase/troopbase/internal/shared"
)

// Service handles role business logic.
type Service struct {
	repo     RepositoryPort
	notifier *notify.Notifier
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, notifier *notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// List returns all roles.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.repo.List(ctx)
}

// Get fetches a role by ID.
func (s *Service) Get(ctx context.Context, id int64) (Role, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a new role. Names are unique, matched exactly.
func (s *Service) Create(ctx context.Context, name string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, shared.ErrConstraint
	}
	role, err := s.repo.Create(ctx, name)
	if err != nil {
		return Role{}, err
	}
	s.notifier.Notify(ctx, notify.OpRoleCreate, role)
	return role, nil
}

// Update renames an existing role.
func (s *Service) Update(ctx context.Context, id int64, name string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, shared.ErrConstraint
	}
	role, err := s.repo.Update(ctx, id, name)
	if err != nil {
		return Role{}, err
	}
	s.notifier.Notify(ctx, notify.OpRoleUpdate, role)
	return role, nil
}

// Delete removes a role; the store cascades its join rows and permission
// rows so no dangling grants survive.
func (s *Service) Delete(ctx context.Context, id int64) (Role, error) {
	role, err := s.repo.Delete(ctx, id)
	if err != nil {
		return Role{}, err
	}
	s.notifier.Notify(ctx, notify.OpRoleDelete, role)
	return role, nil
}
