package shared

import "context"

// The session rides on the request context so handlers and middleware can
// read the authenticated principal without threading it explicitly.

type ctxKeySession struct{}

// ContextWithSession returns a child context carrying the session.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKeySession{}, sess)
}

// SessionFromContext returns the session attached to ctx, or nil when the
// session middleware never ran.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(ctxKeySession{}).(*Session)
	return sess
}
