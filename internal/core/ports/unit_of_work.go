package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Aggregates persisted through its repositories are tracked and their domain events
// are published after a successful Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then publishes the events of every
	// tracked aggregate. Publishing failures do not fail the commit.
	Commit(ctx context.Context) error

	// Rollback discards the transaction and drops tracked aggregates.
	// Returns error if no active transaction exists.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	DeliveryRepository() DeliveryRepository
	UserRepository() UserRepository
	RestaurantRepository() RestaurantRepository
}
