package persistence

import (
	"context"

	"github.com/chamberhub/bizportal/internal/database"
)

// Transactor runs units of work in a database transaction. Stores called
// with the context passed to fn join the transaction.
type Transactor struct {
	db database.Database
}

// NewTransactor creates a Transactor for db.
func NewTransactor(db database.Database) Transactor {
	return Transactor{db: db}
}

// Run executes fn in a transaction, committing when fn returns nil.
func (t Transactor) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.WithTransaction(ctx, t.db, fn)
}
