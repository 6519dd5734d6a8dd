package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery. A second delivery for the same order fails
	// with an InvalidStateError.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists courier, status, position, updated_at and the last report time.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by id.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetForUpdate retrieves a delivery and locks its row until the transaction ends,
	// so concurrent reports for one delivery are applied one at a time.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrder retrieves the delivery of an order, or an ObjectNotFoundError when no
	// courier was ever assigned.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// ListStaleOnRoute returns on_route deliveries last updated before the given instant.
	ListStaleOnRoute(ctx context.Context, updatedBefore time.Time) ([]*delivery.Delivery, error)
}
