// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Handlers read through raw SQL into read models and never load aggregates.
// Every list handler returns an empty slice, never nil.
package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists the orders visible to the caller: a customer sees their own
// orders, an owner the orders of restaurants they own and an admin every order.
//
// Example:
//
//	query, err := NewGetOrdersQuery(principal)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
//	for _, o := range orders {
//	    fmt.Printf("%s %s %s\n", o.ID, o.Status, o.TotalPrice)
//	}
type GetOrdersQuery struct {
	principal user.Principal
	guard     guard.ConstructorGuard
}

func NewGetOrdersQuery(principal user.Principal) (GetOrdersQuery, error) {
	if err := principal.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	return GetOrdersQuery{principal: principal, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) Principal() user.Principal {
	return q.principal
}

// OrderView is the read model of an order with its items.
type OrderView struct {
	ID             kernel.UUID
	CustomerID     kernel.UUID
	RestaurantID   kernel.UUID
	RestaurantName string
	TotalPrice     decimal.Decimal
	Status         string
	OrderType      string
	OrderTime      time.Time
	Items          []OrderItemView
}

type OrderItemView struct {
	MenuItemID  kernel.UUID
	Name        string
	Quantity    int
	Preferences string
	UnitPrice   decimal.Decimal
}
