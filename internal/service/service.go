package service

import (
	"context"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/session"
)

type CheckoutService interface {
	// Submit runs the checkout submission state machine for the user's
	// current basket. A nil-error outcome describes what the client
	// should show or where it should navigate; guard violations that
	// abort silently surface as domain errors instead.
	Submit(ctx context.Context, sess *session.Session, accessToken string) (*domain.CheckoutOutcome, error)
	History(ctx context.Context, sess *session.Session, page, pageSize int32) ([]domain.CheckoutRecord, int32, error)
}

type BrowseService interface {
	SearchDevices(ctx context.Context, place string, w domain.RentalWindow, accessToken string) ([]domain.Device, error)
	SearchAdminDevices(ctx context.Context, sess *session.Session, place string, w domain.RentalWindow, accessToken string) ([]domain.Device, error)
}

type ReceiptService interface {
	SendCheckoutReceipt(ctx context.Context, email string, items []domain.BasketItem, totalPrice int32) error
}
