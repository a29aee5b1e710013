package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/repository"
)

type checkoutRepository struct {
	db *sql.DB
}

func NewCheckoutRepository(db *sql.DB) repository.CheckoutRepository {
	return &checkoutRepository{db: db}
}

func (r *checkoutRepository) Create(ctx context.Context, rec *domain.CheckoutRecord) error {
	query := `INSERT INTO checkout_records (submission_id, user_id, serial_numbers, rent_place, rent_return_place, rent_datetime, rent_return_datetime, total_price, response_code, redirect_url, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rec.SubmissionID, rec.UserID, pq.Array(rec.SerialNumbers), rec.RentPlace, rec.RentReturnPlace,
		rec.RentDatetime, rec.RentReturnDatetime, rec.TotalPrice, rec.ResponseCode, rec.RedirectURL, time.Now(),
	).Scan(&rec.ID)
}

func (r *checkoutRepository) GetBySubmissionID(ctx context.Context, submissionID string) (*domain.CheckoutRecord, error) {
	rec := &domain.CheckoutRecord{}
	query := `SELECT id, submission_id, user_id, serial_numbers, rent_place, rent_return_place, rent_datetime, rent_return_datetime, total_price, response_code, redirect_url, created_on
	          FROM checkout_records WHERE submission_id = $1`
	err := r.db.QueryRowContext(ctx, query, submissionID).Scan(
		&rec.ID, &rec.SubmissionID, &rec.UserID, pq.Array(&rec.SerialNumbers), &rec.RentPlace, &rec.RentReturnPlace,
		&rec.RentDatetime, &rec.RentReturnDatetime, &rec.TotalPrice, &rec.ResponseCode, &rec.RedirectURL, &rec.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *checkoutRepository) ListByUser(ctx context.Context, userID string, page, pageSize int32) ([]domain.CheckoutRecord, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM checkout_records WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, submission_id, user_id, serial_numbers, rent_place, rent_return_place, rent_datetime, rent_return_datetime, total_price, response_code, redirect_url, created_on
	          FROM checkout_records WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []domain.CheckoutRecord
	for rows.Next() {
		var rec domain.CheckoutRecord
		if err := rows.Scan(
			&rec.ID, &rec.SubmissionID, &rec.UserID, pq.Array(&rec.SerialNumbers), &rec.RentPlace, &rec.RentReturnPlace,
			&rec.RentDatetime, &rec.RentReturnDatetime, &rec.TotalPrice, &rec.ResponseCode, &rec.RedirectURL, &rec.CreatedOn,
		); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, count, rows.Err()
}
