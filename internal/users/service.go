package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/troopbase/troopbase/internal/notify"
	"github.com/troopbase/troopbase/internal/shared"
)

// Service handles user business logic: uniqueness checks, password hashing
// and change notifications.
type Service struct {
	repo     RepositoryPort
	notifier *notify.Notifier
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, notifier *notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new user with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, username, password string) (User, error) {
	if err := s.checkUsernameFree(ctx, username); err != nil {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	user, err := s.repo.Create(ctx, username, string(hash))
	if err != nil {
		return User{}, err
	}
	s.notifier.Notify(ctx, notify.OpUserCreate, user)
	return user, nil
}

// Update changes username and/or password of an existing user. Existence
// and username uniqueness are enforced by the repository inside one
// transaction; a missing user surfaces as shared.ErrNotFound, a taken
// username as shared.ErrAlreadyExists.
func (s *Service) Update(ctx context.Context, id int64, username, password *string) (User, error) {
	var hash *string
	if password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		str := string(hashed)
		hash = &str
	}
	user, err := s.repo.Update(ctx, id, username, hash)
	if err != nil {
		return User{}, err
	}
	s.notifier.Notify(ctx, notify.OpUserUpdate, user)
	return user, nil
}

// Delete removes a user; the store cascades join rows and authored events.
func (s *Service) Delete(ctx context.Context, id int64) (User, error) {
	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return User{}, err
	}
	s.notifier.Notify(ctx, notify.OpUserDelete, user)
	return user, nil
}

func (s *Service) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return fmt.Errorf("%w: username %q is taken", shared.ErrAlreadyExists, username)
	}
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}
