package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentflow-backend/internal/checkout"
	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/pricing"
	"rentflow-backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPaymentClient struct {
	mock.Mock
}

func (m *MockPaymentClient) SubmitPayment(ctx context.Context, req *domain.CheckoutRequest, accessToken string) (*domain.PaymentResponse, error) {
	args := m.Called(ctx, req, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResponse), args.Error(1)
}

type MockCheckoutRepo struct {
	mock.Mock
}

func (m *MockCheckoutRepo) Create(ctx context.Context, record *domain.CheckoutRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCheckoutRepo) GetBySubmissionID(ctx context.Context, submissionID string) (*domain.CheckoutRecord, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutRecord), args.Error(1)
}

func (m *MockCheckoutRepo) ListByUser(ctx context.Context, userID string, page, pageSize int32) ([]domain.CheckoutRecord, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.CheckoutRecord), args.Get(1).(int32), args.Error(2)
}

type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) SendCheckoutReceipt(ctx context.Context, email string, items []domain.BasketItem, totalPrice int32) error {
	args := m.Called(ctx, email, items, totalPrice)
	return args.Error(0)
}

func userSession() *session.Session {
	return &session.Session{UserID: "user1", Email: "user1@example.com", Role: domain.RoleUser}
}

func preparedContexts(t *testing.T) *checkout.Manager {
	t.Helper()
	contexts := checkout.NewManager(pricing.DayRateWithSurcharge{SurchargePerDay: pricing.DefaultDailySurcharge})
	cc := contexts.GetOrCreate("user1")
	start := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	cc.SetWindow(domain.RentalWindow{Start: start, End: start.Add(2 * 24 * time.Hour)})
	cc.SelectSites("Seoul Station", "Busan Station")
	cc.AddItem(domain.BasketItem{Name: "Notebook", BasePrice: 10000, SerialNumber: "NB-001"})
	return contexts
}

func TestCheckoutService_Submit_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("Non-user role short-circuits before the collaborator", func(t *testing.T) {
		contexts := preparedContexts(t)
		payment := new(MockPaymentClient)
		svc := NewCheckoutService(contexts, payment, new(MockCheckoutRepo), nil)

		sess := &session.Session{UserID: "user1", Role: domain.RoleAdmin}
		outcome, err := svc.Submit(ctx, sess, "token-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.CodeAuthFailure, outcome.Code)
		assert.True(t, outcome.NavigateHome)
		assert.Empty(t, outcome.RedirectURL)
		payment.AssertNotCalled(t, "SubmitPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing credential short-circuits", func(t *testing.T) {
		contexts := preparedContexts(t)
		payment := new(MockPaymentClient)
		svc := NewCheckoutService(contexts, payment, new(MockCheckoutRepo), nil)

		outcome, err := svc.Submit(ctx, userSession(), "")
		assert.NoError(t, err)
		assert.True(t, outcome.NavigateHome)
		payment.AssertNotCalled(t, "SubmitPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Incomplete window never contacts the collaborator", func(t *testing.T) {
		contexts := checkout.NewManager(pricing.DayRateWithSurcharge{SurchargePerDay: pricing.DefaultDailySurcharge})
		cc := contexts.GetOrCreate("user1")
		cc.SetWindow(domain.RentalWindow{})
		payment := new(MockPaymentClient)
		svc := NewCheckoutService(contexts, payment, new(MockCheckoutRepo), nil)

		_, err := svc.Submit(ctx, userSession(), "token-1")
		assert.ErrorIs(t, err, domain.ErrWindowIncomplete)
		payment.AssertNotCalled(t, "SubmitPayment", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, domain.CheckoutStateIdle, cc.State())
	})
}

func TestCheckoutService_Submit_ResponseMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("Success redirects to the returned URL and clears the basket", func(t *testing.T) {
		contexts := preparedContexts(t)
		payment := new(MockPaymentClient)
		records := new(MockCheckoutRepo)
		receipts := new(MockReceiptService)
		svc := NewCheckoutService(contexts, payment, records, receipts)

		payment.On("SubmitPayment", ctx, mock.AnythingOfType("*domain.CheckoutRequest"), "token-1").
			Return(&domain.PaymentResponse{Code: domain.CodeSuccess, NextRedirectPcURL: "https://pay.example/x"}, nil)
		records.On("Create", ctx, mock.AnythingOfType("*domain.CheckoutRecord")).Return(nil)
		receipts.On("SendCheckoutReceipt", ctx, "user1@example.com", mock.Anything, int32(12000)).Return(nil)

		outcome, err := svc.Submit(ctx, userSession(), "token-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.CodeSuccess, outcome.Code)
		assert.Equal(t, "https://pay.example/x", outcome.RedirectURL)
		assert.Len(t, outcome.Items, 1)
		// 2-day window: 10000 base + one daily surcharge.
		assert.Equal(t, int32(12000), outcome.TotalPrice)

		cc := contexts.GetOrCreate("user1")
		assert.Empty(t, cc.Items())
		assert.Equal(t, domain.CheckoutStateIdle, cc.State())
		records.AssertExpectations(t)
		receipts.AssertExpectations(t)
	})

	t.Run("Auth failure navigates home without a redirect", func(t *testing.T) {
		contexts := preparedContexts(t)
		payment := new(MockPaymentClient)
		svc := NewCheckoutService(contexts, payment, new(MockCheckoutRepo), nil)

		payment.On("SubmitPayment", ctx, mock.Anything, "token-1").
			Return(&domain.PaymentResponse{Code: domain.CodeAuthFailure}, nil)

		outcome, err := svc.Submit(ctx, userSession(), "token-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.CodeAuthFailure, outcome.Code)
		assert.Equal(t, MsgLoginRequired, outcome.Message)
		assert.True(t, outcome.NavigateHome)
		assert.Empty(t, outcome.RedirectURL)
	})

	t.Run("Validation failure prompts to complete the selection", func(t *testing.T) {
		contexts := preparedContexts(t)
		payment := new(MockPaymentClient)
		svc := NewCheckoutService(contexts, payment, new(MockCheckoutRepo), nil)

		payment.On("SubmitPayment", ctx, mock.Anything, "token-1").
			Return(&domain.PaymentResponse{Code: domain.CodeValidationFailure}, nil)

		outcome, err := svc.Submit(ctx, userSession(), "token-1")
		assert.NoError(t, err)
		assert.Equal(t, MsgSelectionIncomplete, outcome.Message)
		// A failed submission keeps the basket for retry.
		assert.Len(t, contexts.GetOrCreate("user1").Items(), 1)
	})

	t.Run("Network failure maps to the server-error message", func(t *testing.T) {
		contexts := preparedContexts(t)
		payment := new(MockPaymentClient)
		svc := NewCheckoutService(contexts, payment, new(MockCheckoutRepo), nil)

		payment.On("SubmitPayment", ctx, mock.Anything, "token-1").
			Return(nil, errors.New("connection refused"))

		outcome, err := svc.Submit(ctx, userSession(), "token-1")
		assert.NoError(t, err)
		assert.Equal(t, MsgServerError, outcome.Message)
		assert.False(t, outcome.NavigateHome)
		assert.Len(t, contexts.GetOrCreate("user1").Items(), 1)
	})

	t.Run("Database error maps to the server-error message", func(t *testing.T) {
		contexts := preparedContexts(t)
		payment := new(MockPaymentClient)
		svc := NewCheckoutService(contexts, payment, new(MockCheckoutRepo), nil)

		payment.On("SubmitPayment", ctx, mock.Anything, "token-1").
			Return(&domain.PaymentResponse{Code: domain.CodeDatabaseError}, nil)

		outcome, err := svc.Submit(ctx, userSession(), "token-1")
		assert.NoError(t, err)
		assert.Equal(t, MsgServerError, outcome.Message)
	})

	t.Run("Unrecognized code surfaces a generic error", func(t *testing.T) {
		contexts := preparedContexts(t)
		payment := new(MockPaymentClient)
		svc := NewCheckoutService(contexts, payment, new(MockCheckoutRepo), nil)

		payment.On("SubmitPayment", ctx, mock.Anything, "token-1").
			Return(&domain.PaymentResponse{Code: "??"}, nil)

		outcome, err := svc.Submit(ctx, userSession(), "token-1")
		assert.NoError(t, err)
		assert.Equal(t, MsgServerError, outcome.Message)
	})

	t.Run("Record persistence failure does not fail the checkout", func(t *testing.T) {
		contexts := preparedContexts(t)
		payment := new(MockPaymentClient)
		records := new(MockCheckoutRepo)
		svc := NewCheckoutService(contexts, payment, records, nil)

		payment.On("SubmitPayment", ctx, mock.Anything, "token-1").
			Return(&domain.PaymentResponse{Code: domain.CodeSuccess, NextRedirectPcURL: "https://pay.example/x"}, nil)
		records.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

		outcome, err := svc.Submit(ctx, userSession(), "token-1")
		assert.NoError(t, err)
		assert.Equal(t, "https://pay.example/x", outcome.RedirectURL)
	})
}

func TestCheckoutService_History(t *testing.T) {
	ctx := context.Background()
	records := new(MockCheckoutRepo)
	svc := NewCheckoutService(checkout.NewManager(pricing.HourRate{}), new(MockPaymentClient), records, nil)

	t.Run("Defaults page and page size", func(t *testing.T) {
		records.On("ListByUser", ctx, "user1", int32(1), int32(20)).
			Return([]domain.CheckoutRecord{{SubmissionID: "sub-1"}}, int32(1), nil)

		list, count, err := svc.History(ctx, userSession(), 0, 0)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), count)
		assert.Len(t, list, 1)
	})

	t.Run("Requires a session", func(t *testing.T) {
		_, _, err := svc.History(ctx, nil, 1, 20)
		assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	})
}
