// Package ports defines the contracts between the application core and its adapters:
// repositories, the unit of work, event publishing and the position cache.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// Add persists a newly placed order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	// Returns an ObjectNotFoundError if the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus persists the order's current status only if the stored status is
	// still expected. A concurrent change fails with errs.ErrConcurrentModified.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error
}
