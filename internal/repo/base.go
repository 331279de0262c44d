// Package repo holds the embedded-store plumbing shared by the till's
// read-side repositories.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the GORM handle for repositories that only need
// context-bound reads against the sqlite store.
type Base struct {
	db *gorm.DB
}

// NewBase wraps the provided connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB binds the connection to the caller's context. A nil context
// returns the bare handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
