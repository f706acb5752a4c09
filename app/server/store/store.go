// Package store holds the persistence layer: site config, admin accounts and
// access logs. Every operation runs in its own transaction, so the underlying
// connection is always committed or rolled back before the call returns.
package store

import (
	"context"
	"errors"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// withTx runs fn inside a transaction bound to ctx.
func withTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}
