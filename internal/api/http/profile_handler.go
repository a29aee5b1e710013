package http

import (
	"net/http"

	"rentflow-backend/internal/domain"
)

// ProfileHandler returns the display-only profile fields cached in the
// session.
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
		return
	}
	writeJSON(w, http.StatusOK, sess.Profile())
}
