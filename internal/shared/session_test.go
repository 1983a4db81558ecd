package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "troopbase_session", time.Hour, false)
}

func TestLoadCreatesFreshSessionWithoutCookie(t *testing.T) {
	sm := newTestManager(t)

	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Zero(t, sess.User())
}

func TestCommitPersistsAndReloads(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.SetUser(42)
	sess.Set("lang", "nl")

	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "troopbase_session", cookies[0].Name)
	assert.Equal(t, sess.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	reloaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), reloaded.User())
	assert.Equal(t, "nl", reloaded.Get("lang"))
}

func TestDestroyedSessionIsGoneAfterCommit(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.SetUser(42)
	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))
	cookie := rr.Result().Cookies()[0]

	sm.Destroy(sess)
	assert.Zero(t, sess.User())
	rr = httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))

	expired := rr.Result().Cookies()
	require.Len(t, expired, 1)
	assert.Negative(t, expired[0].MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	reloaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Zero(t, reloaded.User())
}

func TestLoadToleratesUnknownCookie(t *testing.T) {
	sm := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "troopbase_session", Value: "stale-session-id"})

	sess, err := sm.Load(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "stale-session-id", sess.ID)
	assert.Zero(t, sess.User())
}
