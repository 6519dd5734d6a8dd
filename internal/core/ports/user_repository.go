package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
)

// UserRepository reads user records owned by the registration collaborator.
type UserRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}

// RestaurantRepository reads restaurant and menu records owned by the catalogue collaborator.
type RestaurantRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
	GetMenuItem(ctx context.Context, id kernel.UUID) (*restaurant.MenuItem, error)
}
