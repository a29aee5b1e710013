package repository

import (
	"context"

	"rentflow-backend/internal/domain"
)

type CheckoutRepository interface {
	Create(ctx context.Context, record *domain.CheckoutRecord) error
	GetBySubmissionID(ctx context.Context, submissionID string) (*domain.CheckoutRecord, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int32) ([]domain.CheckoutRecord, int32, error)
}
