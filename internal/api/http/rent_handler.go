package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"rentflow-backend/internal/checkout"
	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/service"
)

// RentHandler covers the rental selections (window, sites, status flag)
// and the device search endpoints.
type RentHandler struct {
	checkouts *checkout.Manager
	browse    service.BrowseService
}

func NewRentHandler(checkouts *checkout.Manager, browse service.BrowseService) *RentHandler {
	return &RentHandler{checkouts: checkouts, browse: browse}
}

type setWindowRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SetWindow replaces the rental window. An inverted window is accepted
// here; the calculators handle it and the payment guard is elsewhere.
func (h *RentHandler) SetWindow(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
		return
	}

	var req setWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeValidationFailure, "Invalid request body.")
		return
	}
	if req.Start.IsZero() || req.End.IsZero() {
		writeError(w, http.StatusBadRequest, domain.CodeValidationFailure, "Both start and end are required.")
		return
	}

	cc := h.checkouts.GetOrCreate(sess.UserID)
	cc.SetWindow(domain.RentalWindow{Start: req.Start, End: req.End})
	writeJSON(w, http.StatusOK, cc.View())
}

type setSitesRequest struct {
	RentSite   string `json:"rent_site"`
	ReturnSite string `json:"return_site"`
	RentStatus string `json:"rent_status,omitempty"`
}

// SetSites sets the rental and return site identifiers, and optionally
// the status flag forwarded verbatim on submission.
func (h *RentHandler) SetSites(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
		return
	}

	var req setSitesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeValidationFailure, "Invalid request body.")
		return
	}

	cc := h.checkouts.GetOrCreate(sess.UserID)
	cc.SelectSites(req.RentSite, req.ReturnSite)
	if req.RentStatus != "" {
		cc.SetStatus(req.RentStatus)
	}
	writeJSON(w, http.StatusOK, cc.View())
}

// SearchDevices lists rentable devices for a site over a window. The
// window query parameters use the collaborator's date-time convention.
func (h *RentHandler) SearchDevices(w http.ResponseWriter, r *http.Request) {
	h.searchDevices(w, r, false)
}

// SearchAdminDevices lists every device regardless of status. Admins
// only.
func (h *RentHandler) SearchAdminDevices(w http.ResponseWriter, r *http.Request) {
	h.searchDevices(w, r, true)
}

func (h *RentHandler) searchDevices(w http.ResponseWriter, r *http.Request, admin bool) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
		return
	}

	place := r.URL.Query().Get("place")
	if place == "" {
		writeError(w, http.StatusBadRequest, domain.CodeValidationFailure, "Query parameter place is required.")
		return
	}
	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeValidationFailure, "Invalid rental window.")
		return
	}

	token := TokenFromContext(r.Context())
	var devices []domain.Device
	if admin {
		devices, err = h.browse.SearchAdminDevices(r.Context(), sess, place, window, token)
	} else {
		devices, err = h.browse.SearchDevices(r.Context(), place, window, token)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbiddenRole):
			writeError(w, http.StatusForbidden, domain.CodeAuthFailure, "Admin role required.")
		case errors.Is(err, domain.ErrNotAuthenticated):
			writeError(w, http.StatusUnauthorized, domain.CodeAuthFailure, "Authentication required.")
		default:
			writeError(w, http.StatusBadGateway, domain.CodeDatabaseError, "Device search is unavailable.")
		}
		return
	}

	writeJSON(w, http.StatusOK, domain.DeviceSearchResponse{
		Code:    domain.CodeSuccess,
		Devices: devices,
	})
}

func windowFromQuery(r *http.Request) (domain.RentalWindow, error) {
	start, err := time.Parse(domain.RentDatetimeLayout, r.URL.Query().Get("rentDatetime"))
	if err != nil {
		return domain.RentalWindow{}, err
	}
	end, err := time.Parse(domain.RentDatetimeLayout, r.URL.Query().Get("rentReturnDatetime"))
	if err != nil {
		return domain.RentalWindow{}, err
	}
	return domain.RentalWindow{Start: start, End: end}, nil
}
