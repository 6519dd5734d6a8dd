// Package messaging forwards committed domain events to message brokers.
// Every event travels as a JSON Envelope; the broker adapters live in subpackages.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Envelope is the wire form of a domain event.
type Envelope struct {
	Name        string          `json:"name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// Encode wraps event into an Envelope and marshals it.
func Encode(event kernel.DomainEvent) ([]byte, error) {
	if event == nil {
		return nil, errors.New("nil domain event")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event.EventName(), err)
	}

	return json.Marshal(Envelope{
		Name:        event.EventName(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     payload,
	})
}

// Decode parses an Envelope produced by Encode.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Publisher is the broker side of ports.EventPublisher.
type Publisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}

// FanOut hands events to every publisher. A failing publisher does not stop the others;
// all failures are returned joined.
type FanOut []Publisher

func (f FanOut) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, events...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event. Used when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, ...kernel.DomainEvent) error { return nil }
