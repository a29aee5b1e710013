package service

import (
	"context"
	"fmt"

	"rentflow-backend/internal/client"
	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/session"
)

type browseService struct {
	devices client.DeviceSearchClient
}

func NewBrowseService(devices client.DeviceSearchClient) BrowseService {
	return &browseService{devices: devices}
}

func (s *browseService) SearchDevices(ctx context.Context, place string, w domain.RentalWindow, accessToken string) ([]domain.Device, error) {
	resp, err := s.devices.SearchDevices(ctx, place, w, accessToken)
	if err != nil {
		return nil, err
	}
	return devicesFromEnvelope(resp)
}

func (s *browseService) SearchAdminDevices(ctx context.Context, sess *session.Session, place string, w domain.RentalWindow, accessToken string) ([]domain.Device, error) {
	if sess == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if sess.Role != domain.RoleAdmin {
		return nil, domain.ErrForbiddenRole
	}
	resp, err := s.devices.SearchAdminDevices(ctx, place, w, accessToken)
	if err != nil {
		return nil, err
	}
	return devicesFromEnvelope(resp)
}

func devicesFromEnvelope(resp *domain.DeviceSearchResponse) ([]domain.Device, error) {
	switch resp.Code {
	case domain.CodeSuccess:
		return resp.Devices, nil
	case domain.CodeAuthFailure:
		return nil, domain.ErrNotAuthenticated
	default:
		return nil, fmt.Errorf("device search failed with code %s", resp.Code)
	}
}
