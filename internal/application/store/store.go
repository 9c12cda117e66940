// Package store persists application records. Three implementations share
// one interface: an in-memory map for tests, the flat JSON file the demo
// deployment uses, and Postgres for real deployments.
package store

import (
	"context"

	"passportal/internal/application/models"
)

// Store is the persistence contract for application records. Implementations
// return sentinel.ErrNotFound / sentinel.ErrConflict for factual storage
// states; they never produce domain error codes.
type Store interface {
	// Create inserts a new record, failing with sentinel.ErrConflict when
	// the generated ID already exists.
	Create(ctx context.Context, record *models.ApplicationRecord) error

	// FindByID returns the record or sentinel.ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.ApplicationRecord, error)

	// List returns all records, newest submission first.
	List(ctx context.Context) ([]*models.ApplicationRecord, error)

	// Execute atomically runs validate then mutate against one record while
	// holding the store's write lock, so status checks and writes cannot
	// interleave with a concurrent update. It returns the mutated record.
	Execute(ctx context.Context, id string,
		validate func(*models.ApplicationRecord) error,
		mutate func(*models.ApplicationRecord)) (*models.ApplicationRecord, error)
}
