package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/troopbase/troopbase/internal/shared"
	"github.com/troopbase/troopbase/internal/users"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSessionManager(t *testing.T) *shared.SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return shared.NewSessionManager(client, "troopbase_session", time.Hour, false)
}

func requestWithSession(t *testing.T, sm *shared.SessionManager, method, target, body string) (*http.Request, *shared.Session) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess)), sess
}

func newTestHandler(t *testing.T, sm *shared.SessionManager) *Handler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	source := &mockUsers{byName: map[string]users.User{
		"bever": {ID: 1, Username: "bever", PasswordHash: string(hash), IsActive: true},
	}}
	return NewHandler(discardLogger(), NewService(source), sm)
}

func TestLoginSetsSessionUser(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := newTestHandler(t, sm)

	req, sess := requestWithSession(t, sm, http.MethodPost, "/auth/login",
		`{"username":"bever","password":"hunter2hunter2"}`)
	rr := httptest.NewRecorder()

	handler.login(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(1), sess.User())
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := newTestHandler(t, sm)

	req, sess := requestWithSession(t, sm, http.MethodPost, "/auth/login",
		`{"username":"bever","password":"not-the-password"}`)
	rr := httptest.NewRecorder()

	handler.login(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Zero(t, sess.User())
}

func TestLoginValidatesPayload(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := newTestHandler(t, sm)

	req, _ := requestWithSession(t, sm, http.MethodPost, "/auth/login",
		`{"username":"x","password":"short"}`)
	rr := httptest.NewRecorder()

	handler.login(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := newTestHandler(t, sm)

	req, sess := requestWithSession(t, sm, http.MethodPost, "/auth/logout", "")
	sess.SetUser(1)
	rr := httptest.NewRecorder()

	handler.logout(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Zero(t, sess.User())
}

func TestMeRequiresAuthentication(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := newTestHandler(t, sm)

	req, _ := requestWithSession(t, sm, http.MethodGet, "/auth/me", "")
	rr := httptest.NewRecorder()

	handler.me(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMeReturnsCurrentUser(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := newTestHandler(t, sm)

	req, sess := requestWithSession(t, sm, http.MethodGet, "/auth/me", "")
	sess.SetUser(1)
	rr := httptest.NewRecorder()

	handler.me(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"bever"`)
}
