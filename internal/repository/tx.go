package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxRunner executes a function atomically. Repositories called with the
// context passed to fn participate in the same transaction; a returned
// error rolls everything back.
type TxRunner interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewTxRunner creates a TxRunner backed by a GORM database connection
func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

// RunAtomic runs fn inside a single database transaction
func (r *gormTxRunner) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn resolves the database handle for ctx: the enclosing transaction if
// RunAtomic put one there, the repository's own connection otherwise.
func conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
