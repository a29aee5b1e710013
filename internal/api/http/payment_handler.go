package http

import (
	"errors"
	"net/http"
	"strconv"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/service"
)

// PaymentHandler drives the checkout submission and the submission
// history.
type PaymentHandler struct {
	checkout service.CheckoutService
}

func NewPaymentHandler(checkoutSvc service.CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkout: checkoutSvc}
}

// Submit runs the payment submission for the user's current basket. An
// incomplete rental window aborts silently with no content, matching
// the submit guard: nothing was sent, there is nothing to report. A
// submission already in flight is rejected as a conflict.
func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	token := TokenFromContext(r.Context())

	outcome, err := h.checkout.Submit(r.Context(), sess, token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWindowIncomplete):
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, domain.ErrSubmissionInFlight):
			writeError(w, http.StatusConflict, domain.CodeValidationFailure, "A payment submission is already in progress.")
		default:
			writeError(w, http.StatusInternalServerError, domain.CodeDatabaseError, "There is a problem with the server.")
		}
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// History lists the user's persisted checkout records, newest first.
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
		return
	}

	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	records, total, err := h.checkout.History(r.Context(), sess, page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, domain.CodeDatabaseError, "There is a problem with the server.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"total":   total,
		"page":    page,
	})
}

func queryInt32(r *http.Request, key string, fallback int32) int32 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}
