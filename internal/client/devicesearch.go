package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/logger"
)

// DeviceSearchClient is the boundary to the device search collaborator.
// It lists rentable devices for a site and rental window; the admin
// list additionally includes unrentable and rented units.
type DeviceSearchClient interface {
	SearchDevices(ctx context.Context, place string, w domain.RentalWindow, accessToken string) (*domain.DeviceSearchResponse, error)
	SearchAdminDevices(ctx context.Context, place string, w domain.RentalWindow, accessToken string) (*domain.DeviceSearchResponse, error)
}

type deviceSearchClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewDeviceSearchClient(baseURL string, timeout time.Duration) DeviceSearchClient {
	return &deviceSearchClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *deviceSearchClient) SearchDevices(ctx context.Context, place string, w domain.RentalWindow, accessToken string) (*domain.DeviceSearchResponse, error) {
	return c.search(ctx, "/api/v1/device/list", place, w, accessToken)
}

func (c *deviceSearchClient) SearchAdminDevices(ctx context.Context, place string, w domain.RentalWindow, accessToken string) (*domain.DeviceSearchResponse, error) {
	return c.search(ctx, "/api/v1/device/admin-list", place, w, accessToken)
}

func (c *deviceSearchClient) search(ctx context.Context, path, place string, w domain.RentalWindow, accessToken string) (*domain.DeviceSearchResponse, error) {
	query := url.Values{}
	query.Set("place", place)
	if w.Complete() {
		query.Set("rentDatetime", w.Start.Format(domain.RentDatetimeLayout))
		query.Set("rentReturnDatetime", w.End.Format(domain.RentDatetimeLayout))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create device search request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	logger.ExternalServiceCall("device-search", path, "place", place)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.ExternalServiceResult("device-search", path, err)
		return nil, fmt.Errorf("device search request failed: %w", err)
	}
	defer resp.Body.Close()

	var envelope domain.DeviceSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		logger.ExternalServiceResult("device-search", path, err, "status", resp.StatusCode)
		return nil, fmt.Errorf("failed to decode device search response (status %d): %w", resp.StatusCode, err)
	}

	logger.ExternalServiceResult("device-search", path, nil, "code", envelope.Code, "devices", len(envelope.Devices))
	return &envelope, nil
}
