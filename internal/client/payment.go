package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/logger"
)

// PaymentClient is the boundary to the external payment collaborator.
// A nil response with a non-nil error means the collaborator could not
// be reached at all; otherwise the envelope carries a coded result.
type PaymentClient interface {
	SubmitPayment(ctx context.Context, req *domain.CheckoutRequest, accessToken string) (*domain.PaymentResponse, error)
}

type paymentClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPaymentClient creates an HTTP payment collaborator client.
func NewPaymentClient(baseURL string, timeout time.Duration) PaymentClient {
	return &paymentClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *paymentClient) SubmitPayment(ctx context.Context, req *domain.CheckoutRequest, accessToken string) (*domain.PaymentResponse, error) {
	url := c.baseURL + "/api/v1/payment/save"

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	logger.ExternalServiceCall("payment", "SubmitPayment", "user_id", req.RentUserID, "items", len(req.RentSerialNumbers))
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.ExternalServiceResult("payment", "SubmitPayment", err)
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.ExternalServiceResult("payment", "SubmitPayment", err)
		return nil, fmt.Errorf("failed to read payment response: %w", err)
	}

	// The collaborator returns a coded envelope on failure statuses too,
	// so the body is decoded regardless of the HTTP status.
	var envelope domain.PaymentResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		logger.ExternalServiceResult("payment", "SubmitPayment", err, "status", resp.StatusCode)
		return nil, fmt.Errorf("failed to decode payment response (status %d): %w", resp.StatusCode, err)
	}
	if envelope.Code == "" {
		logger.ExternalServiceResult("payment", "SubmitPayment", fmt.Errorf("empty response code"), "status", resp.StatusCode)
		return nil, fmt.Errorf("payment response carried no code (status %d)", resp.StatusCode)
	}

	logger.ExternalServiceResult("payment", "SubmitPayment", nil, "code", envelope.Code)
	return &envelope, nil
}
