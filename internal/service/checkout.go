package service

import (
	"context"
	"log/slog"

	"rentflow-backend/internal/checkout"
	"rentflow-backend/internal/client"
	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/logger"
	"rentflow-backend/internal/repository"
	"rentflow-backend/internal/session"
)

// User-facing messages selected from the collaborator's response code.
const (
	MsgServerError         = "There is a problem with the server."
	MsgSelectionIncomplete = "Select the rental site, return site, dates and device types."
	MsgLoginRequired       = "Log in before proceeding with payment."
)

type checkoutService struct {
	contexts *checkout.Manager
	payment  client.PaymentClient
	records  repository.CheckoutRepository
	receipts ReceiptService
	log      *slog.Logger
}

func NewCheckoutService(
	contexts *checkout.Manager,
	payment client.PaymentClient,
	records repository.CheckoutRepository,
	receipts ReceiptService,
) CheckoutService {
	return &checkoutService{
		contexts: contexts,
		payment:  payment,
		records:  records,
		receipts: receipts,
		log:      logger.WithService("checkout"),
	}
}

func (s *checkoutService) Submit(ctx context.Context, sess *session.Session, accessToken string) (*domain.CheckoutOutcome, error) {
	// Entry guard: the role check is a hard short-circuit. The payment
	// collaborator is never contacted for a session that may not rent.
	if sess == nil || accessToken == "" || sess.Role != domain.RoleUser {
		return &domain.CheckoutOutcome{
			Code:         domain.CodeAuthFailure,
			Message:      MsgLoginRequired,
			NavigateHome: true,
		}, nil
	}

	cc := s.contexts.GetOrCreate(sess.UserID)
	snap, err := cc.BeginSubmission(sess.UserID)
	if err != nil {
		// ErrWindowIncomplete aborts silently; ErrSubmissionInFlight
		// rejects the duplicate click. Neither reaches the collaborator.
		return nil, err
	}

	resp, err := s.payment.SubmitPayment(ctx, &snap.Request, accessToken)
	if err != nil || resp == nil {
		cc.FinishFailure()
		s.log.Error("Payment submission failed", "user_id", sess.UserID, "submission_id", snap.SubmissionID, "error", err)
		return &domain.CheckoutOutcome{Message: MsgServerError}, nil
	}

	switch resp.Code {
	case domain.CodeSuccess:
		s.recordSubmission(ctx, sess, snap, resp)
		s.sendReceipt(ctx, sess, snap)
		cc.FinishSuccess()
		return &domain.CheckoutOutcome{
			Code:        domain.CodeSuccess,
			RedirectURL: resp.NextRedirectPcURL,
			Items:       snap.Items,
			TotalPrice:  snap.TotalPrice,
		}, nil

	case domain.CodeValidationFailure:
		cc.FinishFailure()
		return &domain.CheckoutOutcome{Code: resp.Code, Message: MsgSelectionIncomplete}, nil

	case domain.CodeAuthFailure:
		cc.FinishFailure()
		return &domain.CheckoutOutcome{Code: resp.Code, Message: MsgLoginRequired, NavigateHome: true}, nil

	case domain.CodeDatabaseError:
		cc.FinishFailure()
		return &domain.CheckoutOutcome{Code: resp.Code, Message: MsgServerError}, nil

	default:
		cc.FinishFailure()
		s.log.Warn("Unrecognized payment response code", "code", resp.Code, "submission_id", snap.SubmissionID)
		return &domain.CheckoutOutcome{Code: resp.Code, Message: MsgServerError}, nil
	}
}

// recordSubmission persists the accepted checkout snapshot. Persistence
// problems are logged, not surfaced: the payment already went through.
func (s *checkoutService) recordSubmission(ctx context.Context, sess *session.Session, snap *checkout.Snapshot, resp *domain.PaymentResponse) {
	record := &domain.CheckoutRecord{
		SubmissionID:       snap.SubmissionID,
		UserID:             sess.UserID,
		SerialNumbers:      snap.Request.RentSerialNumbers,
		RentPlace:          snap.Request.RentPlace,
		RentReturnPlace:    snap.Request.RentReturnPlace,
		RentDatetime:       snap.Request.RentDatetime,
		RentReturnDatetime: snap.Request.RentReturnDatetime,
		TotalPrice:         snap.TotalPrice,
		ResponseCode:       resp.Code,
		RedirectURL:        resp.NextRedirectPcURL,
	}
	if err := s.records.Create(ctx, record); err != nil {
		s.log.Error("Failed to persist checkout record", "submission_id", snap.SubmissionID, "error", err)
	}
}

func (s *checkoutService) sendReceipt(ctx context.Context, sess *session.Session, snap *checkout.Snapshot) {
	if s.receipts == nil || sess.Email == "" {
		return
	}
	if err := s.receipts.SendCheckoutReceipt(ctx, sess.Email, snap.Items, snap.TotalPrice); err != nil {
		s.log.Error("Failed to send checkout receipt", "submission_id", snap.SubmissionID, "error", err)
	}
}

func (s *checkoutService) History(ctx context.Context, sess *session.Session, page, pageSize int32) ([]domain.CheckoutRecord, int32, error) {
	if sess == nil {
		return nil, 0, domain.ErrNotAuthenticated
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.records.ListByUser(ctx, sess.UserID, page, pageSize)
}
