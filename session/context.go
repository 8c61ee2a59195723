package session

import "context"

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var sessionKey contextKey

// NewContext stores the session in the context for downstream handlers.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext retrieves the session placed in the context by the middleware.
// Returns the session and true if present, or nil and false otherwise.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok
}

// MustFromContext retrieves the session from the context.
// Panics if absent — use in handlers the auth middleware guards.
func MustFromContext(ctx context.Context) *Session {
	s, ok := FromContext(ctx)
	if !ok {
		panic("session: no session in context")
	}
	return s
}
