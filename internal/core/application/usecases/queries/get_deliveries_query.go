package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
)

// GetDeliveriesQuery lists deliveries visible to the caller: a courier sees their own,
// an owner those of their restaurants and an admin all of them.
type GetDeliveriesQuery struct {
	principal user.Principal
	guard     guard.ConstructorGuard
}

func NewGetDeliveriesQuery(principal user.Principal) (GetDeliveriesQuery, error) {
	if err := principal.Validate(); err != nil {
		return GetDeliveriesQuery{}, err
	}
	return GetDeliveriesQuery{principal: principal, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

// DeliveryView joins a delivery with its order, restaurant, customer and courier.
// Latitude and Longitude are nil until the courier reports a position.
type DeliveryView struct {
	ID             kernel.UUID
	Status         string
	Latitude       *float64
	Longitude      *float64
	UpdatedAt      time.Time
	CourierID      kernel.UUID
	CourierName    string
	CourierPhone   string
	OrderID        kernel.UUID
	OrderStatus    string
	TotalPrice     decimal.Decimal
	RestaurantID   kernel.UUID
	RestaurantName string
	CustomerID     kernel.UUID
	CustomerName   string
	CustomerPhone  string
	Items          []OrderItemView
}
