package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/security"
	"rentflow-backend/internal/session"
)

// AuthMiddleware validates the Bearer access credential on every
// request, initializes the session on first sight of a valid
// credential, and injects session plus raw token into the request
// context. Absence of a valid credential means "not authenticated" and
// the request never reaches a handler.
type AuthMiddleware struct {
	tokens   security.TokenManager
	sessions *session.Manager
}

func NewAuthMiddleware(tokens security.TokenManager, sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			// Credential loss: drop any session cached for this token's
			// subject so stale profile fields do not outlive the login.
			if errors.Is(err, security.ErrExpiredToken) {
				if subject := expiredTokenSubject(token); subject != "" {
					m.sessions.Teardown(subject)
				}
			}
			writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
			return
		}

		sess := m.sessions.Init(claims)
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrNotAuthenticated
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return "", domain.ErrNotAuthenticated
	}
	return token, nil
}

// expiredTokenSubject best-effort extracts the subject of an expired
// token: the payload is still readable, only the validity check failed.
// The result is only used to tear down local state, never to grant
// access.
func expiredTokenSubject(token string) string {
	claims, err := security.UnverifiedClaims(token)
	if err != nil {
		return ""
	}
	return claims.UserID
}
