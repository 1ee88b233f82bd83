// Package dbtx carries a request-scoped gorm transaction through the
// context. It sits below both the middleware that opens transactions
// and the repositories that join them, so neither imports the other.
package dbtx

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// WithTx returns a context carrying the given transaction. Repositories
// resolve it so every query inside one request shares the transaction.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// FromContext returns the transaction bound to the context, falling back
// to the shared connection when the request runs outside a transaction.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
