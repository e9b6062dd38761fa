package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type txKey struct{}

func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// InTransaction reports whether ctx carries an open transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := txFromContext(ctx)
	return ok
}

// WithTransaction runs fn inside a transaction, committing on success and
// rolling back on error or panic. Stores called with the context passed to fn
// join the transaction through Database.Session. Nested calls reuse the
// outer transaction.
func WithTransaction(ctx context.Context, db Database, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}

	tx := db.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback().Error
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}

// WithTransactionResult runs fn inside a transaction and returns its result on success.
func WithTransactionResult[T any](ctx context.Context, db Database, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := WithTransaction(ctx, db, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
