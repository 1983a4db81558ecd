package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/troopbase/troopbase/internal/shared"
	"github.com/troopbase/troopbase/internal/users"
)

// UserSource provides the account lookups authentication needs.
type UserSource interface {
	Get(ctx context.Context, id int64) (users.User, error)
	GetByUsername(ctx context.Context, username string) (users.User, error)
}

// Service wraps authentication business rules.
type Service struct {
	users UserSource
}

// NewService constructs a new Service.
func NewService(users UserSource) *Service {
	return &Service{users: users}
}

// Authenticate validates username/password credentials. Every failure mode
// collapses into shared.ErrInvalidCredentials so responses do not reveal
// whether the account exists or is deactivated.
func (s *Service) Authenticate(ctx context.Context, username, password string) (users.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return users.User{}, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return users.User{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return users.User{}, shared.ErrInvalidCredentials
	}
	return user, nil
}

// CurrentUser resolves the account behind an authenticated session.
func (s *Service) CurrentUser(ctx context.Context, id int64) (users.User, error) {
	return s.users.Get(ctx, id)
}
