package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentflow-backend/internal/domain"
)

type receiptService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewReceiptService(apiKey, fromEmail, fromName string) ReceiptService {
	return &receiptService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *receiptService) SendCheckoutReceipt(ctx context.Context, email string, items []domain.BasketItem, totalPrice int32) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", email)

	var b strings.Builder
	b.WriteString("Your rental payment request was accepted.\n\nItems:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "  - %s (%s)\n", item.Name, item.SerialNumber)
	}
	fmt.Fprintf(&b, "\nTotal: %d\n", totalPrice)

	message := mail.NewSingleEmail(from, "Rental payment receipt", recipient, b.String(), "")

	sgClient := sendgrid.NewSendClient(s.apiKey)
	response, err := sgClient.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
