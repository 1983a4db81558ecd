package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/troopbase/troopbase/internal/shared"
	"github.com/troopbase/troopbase/internal/users"
)

type mockUsers struct {
	byName map[string]users.User
}

func (m *mockUsers) Get(_ context.Context, id int64) (users.User, error) {
	for _, u := range m.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return users.User{}, shared.ErrNotFound
}

func (m *mockUsers) GetByUsername(_ context.Context, username string) (users.User, error) {
	u, ok := m.byName[username]
	if !ok {
		return users.User{}, shared.ErrNotFound
	}
	return u, nil
}

func seededUsers(t *testing.T, password string, active bool) *mockUsers {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &mockUsers{byName: map[string]users.User{
		"bever": {ID: 1, Username: "bever", PasswordHash: string(hash), IsActive: active},
	}}
}

func TestAuthenticateSuccess(t *testing.T) {
	svc := NewService(seededUsers(t, "hunter2hunter2", true))

	user, err := svc.Authenticate(context.Background(), "bever", "hunter2hunter2")

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := NewService(seededUsers(t, "hunter2hunter2", true))

	_, err := svc.Authenticate(context.Background(), "bever", "wrong-password")

	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := NewService(seededUsers(t, "hunter2hunter2", true))

	_, err := svc.Authenticate(context.Background(), "ghost", "hunter2hunter2")

	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	svc := NewService(seededUsers(t, "hunter2hunter2", false))

	_, err := svc.Authenticate(context.Background(), "bever", "hunter2hunter2")

	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
