package auth

import (
	"context"
)

// Session is the verified identity of the caller. It replaces any process-wide
// "current user" state: handlers read it from the request context.
type Session struct {
	UserID string
	Email  string
	Role   string
}

func (s *Session) IsAdmin(adminRole string) bool {
	return s != nil && s.Role == adminRole
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session placed by Middleware, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// UserID is a convenience for audit fields; empty when unauthenticated.
func UserID(ctx context.Context) string {
	if s := FromContext(ctx); s != nil {
		return s.UserID
	}
	return ""
}
