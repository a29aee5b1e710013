package postgres

import (
	"database/sql"

	"rentflow-backend/internal/repository"
)

// Store bundles all Postgres-backed repositories.
type Store struct {
	CheckoutRepository repository.CheckoutRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		CheckoutRepository: NewCheckoutRepository(db),
	}
}
