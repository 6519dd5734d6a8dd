package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// CachedPosition is the latest accepted courier report for a delivery. UpdatedAt is
// server time.
type CachedPosition struct {
	DeliveryID kernel.UUID
	OrderID    kernel.UUID
	Status     string
	Latitude   *float64
	Longitude  *float64
	UpdatedAt  time.Time
}

// PositionCache keeps the latest courier position per order for tracking reads.
type PositionCache interface {
	Put(ctx context.Context, position CachedPosition) error
	// Get returns the cached position of an order's delivery and false on a miss.
	Get(ctx context.Context, orderID kernel.UUID) (CachedPosition, bool, error)
}
