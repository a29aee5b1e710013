package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentflow-backend/internal/checkout"
	"rentflow-backend/internal/domain"
)

// BasketHandler exposes the per-user basket over HTTP. Every mutation
// responds with the refreshed basket view so the client never has to
// derive totals itself.
type BasketHandler struct {
	checkouts *checkout.Manager
}

func NewBasketHandler(checkouts *checkout.Manager) *BasketHandler {
	return &BasketHandler{checkouts: checkouts}
}

// GetBasket returns the current basket view.
func (h *BasketHandler) GetBasket(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
		return
	}
	cc := h.checkouts.GetOrCreate(sess.UserID)
	writeJSON(w, http.StatusOK, cc.View())
}

// AddItem appends a device to the basket. The same serial number may be
// added more than once and there is no capacity limit.
func (h *BasketHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
		return
	}

	var item domain.BasketItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeValidationFailure, "Invalid request body.")
		return
	}
	if item.Name == "" || item.SerialNumber == "" {
		writeError(w, http.StatusBadRequest, domain.CodeValidationFailure, "Device name and serial number are required.")
		return
	}

	cc := h.checkouts.GetOrCreate(sess.UserID)
	cc.AddItem(item)
	writeJSON(w, http.StatusOK, cc.View())
}

// RemoveItem removes the item at the given position. An out-of-range
// index is rejected and the basket is untouched.
func (h *BasketHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeValidationFailure, "Invalid item index.")
		return
	}

	cc := h.checkouts.GetOrCreate(sess.UserID)
	if err := cc.RemoveItem(index); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeValidationFailure, "Item index out of range.")
		return
	}
	writeJSON(w, http.StatusOK, cc.View())
}

// ClearBasket empties the basket and resets the selections in one
// transition.
func (h *BasketHandler) ClearBasket(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
		return
	}

	cc := h.checkouts.GetOrCreate(sess.UserID)
	cc.Clear()
	writeJSON(w, http.StatusOK, cc.View())
}
