package delivery

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

const (
	AssignedEventName         = "delivery.assigned"
	ReassignedEventName       = "delivery.reassigned"
	PositionReportedEventName = "delivery.position_reported"
)

// AssignedEvent is raised when a courier is first bound to an order.
type AssignedEvent struct {
	DeliveryID kernel.UUID `json:"delivery_id"`
	OrderID    kernel.UUID `json:"order_id"`
	CourierID  kernel.UUID `json:"courier_id"`
	At         time.Time   `json:"occurred_at"`
}

func (e AssignedEvent) EventName() string        { return AssignedEventName }
func (e AssignedEvent) AggregateID() kernel.UUID { return e.DeliveryID }
func (e AssignedEvent) OccurredAt() time.Time    { return e.At }

// ReassignedEvent is raised when the courier of a delivery is replaced.
type ReassignedEvent struct {
	DeliveryID        kernel.UUID `json:"delivery_id"`
	OrderID           kernel.UUID `json:"order_id"`
	PreviousCourierID kernel.UUID `json:"previous_courier_id"`
	CourierID         kernel.UUID `json:"courier_id"`
	At                time.Time   `json:"occurred_at"`
}

func (e ReassignedEvent) EventName() string        { return ReassignedEventName }
func (e ReassignedEvent) AggregateID() kernel.UUID { return e.DeliveryID }
func (e ReassignedEvent) OccurredAt() time.Time    { return e.At }

// PositionReportedEvent carries an accepted courier report.
// Latitude and Longitude are nil when the report had no position or the position was
// stale. RecordedAt is device time, At is server time.
type PositionReportedEvent struct {
	DeliveryID kernel.UUID `json:"delivery_id"`
	OrderID    kernel.UUID `json:"order_id"`
	CourierID  kernel.UUID `json:"courier_id"`
	Status     string      `json:"status"`
	Latitude   *float64    `json:"latitude,omitempty"`
	Longitude  *float64    `json:"longitude,omitempty"`
	RecordedAt time.Time   `json:"recorded_at"`
	At         time.Time   `json:"occurred_at"`
}

func (e PositionReportedEvent) EventName() string        { return PositionReportedEventName }
func (e PositionReportedEvent) AggregateID() kernel.UUID { return e.DeliveryID }
func (e PositionReportedEvent) OccurredAt() time.Time    { return e.At }
