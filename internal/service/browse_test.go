package service

import (
	"context"
	"testing"
	"time"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDeviceSearchClient struct {
	mock.Mock
}

func (m *MockDeviceSearchClient) SearchDevices(ctx context.Context, place string, w domain.RentalWindow, accessToken string) (*domain.DeviceSearchResponse, error) {
	args := m.Called(ctx, place, w, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeviceSearchResponse), args.Error(1)
}

func (m *MockDeviceSearchClient) SearchAdminDevices(ctx context.Context, place string, w domain.RentalWindow, accessToken string) (*domain.DeviceSearchResponse, error) {
	args := m.Called(ctx, place, w, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeviceSearchResponse), args.Error(1)
}

func testWindow() domain.RentalWindow {
	start := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	return domain.RentalWindow{Start: start, End: start.Add(48 * time.Hour)}
}

func TestBrowseService_SearchDevices(t *testing.T) {
	ctx := context.Background()
	w := testWindow()

	t.Run("Success", func(t *testing.T) {
		devices := new(MockDeviceSearchClient)
		svc := NewBrowseService(devices)

		devices.On("SearchDevices", ctx, "Seoul Station", w, "token-1").
			Return(&domain.DeviceSearchResponse{
				Code:    domain.CodeSuccess,
				Devices: []domain.Device{{SerialNumber: "NB-001", Name: "Notebook"}},
			}, nil)

		list, err := svc.SearchDevices(ctx, "Seoul Station", w, "token-1")
		assert.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("Auth failure maps to ErrNotAuthenticated", func(t *testing.T) {
		devices := new(MockDeviceSearchClient)
		svc := NewBrowseService(devices)

		devices.On("SearchDevices", ctx, "Seoul Station", w, "token-1").
			Return(&domain.DeviceSearchResponse{Code: domain.CodeAuthFailure}, nil)

		_, err := svc.SearchDevices(ctx, "Seoul Station", w, "token-1")
		assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	})
}

func TestBrowseService_SearchAdminDevices(t *testing.T) {
	ctx := context.Background()
	w := testWindow()

	t.Run("Requires the admin role", func(t *testing.T) {
		devices := new(MockDeviceSearchClient)
		svc := NewBrowseService(devices)

		sess := &session.Session{UserID: "user1", Role: domain.RoleUser}
		_, err := svc.SearchAdminDevices(ctx, sess, "Seoul Station", w, "token-1")
		assert.ErrorIs(t, err, domain.ErrForbiddenRole)
		devices.AssertNotCalled(t, "SearchAdminDevices", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Admin sees the admin list", func(t *testing.T) {
		devices := new(MockDeviceSearchClient)
		svc := NewBrowseService(devices)

		sess := &session.Session{UserID: "admin1", Role: domain.RoleAdmin}
		devices.On("SearchAdminDevices", ctx, "Seoul Station", w, "token-1").
			Return(&domain.DeviceSearchResponse{
				Code:    domain.CodeSuccess,
				Devices: []domain.Device{{SerialNumber: "NB-001", Status: domain.DeviceStatusUnrentable}},
			}, nil)

		list, err := svc.SearchAdminDevices(ctx, sess, "Seoul Station", w, "token-1")
		assert.NoError(t, err)
		assert.Len(t, list, 1)
	})
}
