package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	PlacedEventName        = "order.placed"
	StatusChangedEventName = "order.status_changed"
)

// PlacedEvent is raised once when a customer places an order.
type PlacedEvent struct {
	OrderID      kernel.UUID     `json:"order_id"`
	CustomerID   kernel.UUID     `json:"customer_id"`
	RestaurantID kernel.UUID     `json:"restaurant_id"`
	OrderType    string          `json:"order_type"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	At           time.Time       `json:"occurred_at"`
}

func (e PlacedEvent) EventName() string        { return PlacedEventName }
func (e PlacedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e PlacedEvent) OccurredAt() time.Time    { return e.At }

// StatusChangedEvent is raised on every status change, including assignment,
// the delivery cascade and admin overrides.
type StatusChangedEvent struct {
	OrderID      kernel.UUID `json:"order_id"`
	CustomerID   kernel.UUID `json:"customer_id"`
	RestaurantID kernel.UUID `json:"restaurant_id"`
	From         string      `json:"from"`
	To           string      `json:"to"`
	Override     bool        `json:"override"`
	At           time.Time   `json:"occurred_at"`
}

func (e StatusChangedEvent) EventName() string        { return StatusChangedEventName }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time    { return e.At }
