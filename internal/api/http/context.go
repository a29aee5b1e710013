package http

import (
	"context"

	"rentflow-backend/internal/session"
)

type contextKey string

const (
	sessionKey contextKey = "session"
	tokenKey   contextKey = "access-token"
)

// SessionFromContext extracts the authenticated session placed in the
// request context by the auth middleware.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok
}

// TokenFromContext extracts the raw access token, forwarded to the
// collaborators on outbound calls.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
