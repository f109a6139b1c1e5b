package repository

import (
	"context"

	"academy-backend/internal/domains/cart/model"
)

// Store keeps one cart per session id
type Store interface {
	// Add inserts entry unless the course is already present. It returns the
	// entry held by the cart, which is the earlier snapshot when added is false.
	Add(ctx context.Context, sessionID string, entry model.CartEntry) (stored model.CartEntry, added bool, err error)
	// Remove is idempotent
	Remove(ctx context.Context, sessionID string, courseID int64) error
	Clear(ctx context.Context, sessionID string) error
	// List returns entries in insertion order
	List(ctx context.Context, sessionID string) ([]model.CartEntry, error)
}
