package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentflow-backend/internal/checkout"
	"rentflow-backend/internal/security"
	"rentflow-backend/internal/service"
	"rentflow-backend/internal/session"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Tokens    security.TokenManager
	Sessions  *session.Manager
	Checkouts *checkout.Manager
	Checkout  service.CheckoutService
	Browse    service.BrowseService
}

// NewRouter wires the API routes behind the auth middleware. Every
// route requires a valid Bearer credential.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()

	basket := NewBasketHandler(deps.Checkouts)
	rent := NewRentHandler(deps.Checkouts, deps.Browse)
	payment := NewPaymentHandler(deps.Checkout)
	profile := NewProfileHandler()

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(deps.Tokens, deps.Sessions).Handler)

	api.HandleFunc("/rent/basket", basket.GetBasket).Methods(http.MethodGet)
	api.HandleFunc("/rent/basket", basket.ClearBasket).Methods(http.MethodDelete)
	api.HandleFunc("/rent/basket/items", basket.AddItem).Methods(http.MethodPost)
	api.HandleFunc("/rent/basket/items/{index}", basket.RemoveItem).Methods(http.MethodDelete)

	api.HandleFunc("/rent/window", rent.SetWindow).Methods(http.MethodPut)
	api.HandleFunc("/rent/sites", rent.SetSites).Methods(http.MethodPut)
	api.HandleFunc("/rent/devices", rent.SearchDevices).Methods(http.MethodGet)
	api.HandleFunc("/rent/devices/admin", rent.SearchAdminDevices).Methods(http.MethodGet)

	api.HandleFunc("/rent/payment", payment.Submit).Methods(http.MethodPost)
	api.HandleFunc("/rent/payment/history", payment.History).Methods(http.MethodGet)

	api.HandleFunc("/users/me", profile.GetProfile).Methods(http.MethodGet)

	return router
}
