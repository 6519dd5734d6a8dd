package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate while it changes state.
// Events are collected by the unit of work and published after a successful commit.
type DomainEvent interface {
	// EventName is the routing name, e.g. "order.status_changed".
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// AggregateRoot is implemented by aggregates that record domain events.
type AggregateRoot interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// EventRecorder is embedded by aggregates to collect their domain events.
// The zero value is ready to use.
type EventRecorder struct {
	events []DomainEvent
}

// RaiseDomainEvent appends an event to the pending list.
func (r *EventRecorder) RaiseDomainEvent(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns a copy of the pending events in the order they were raised.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// ClearDomainEvents drops all pending events.
func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
