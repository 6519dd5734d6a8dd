// Package rabbitmq fans domain events out to notification consumers over a RabbitMQ exchange.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel used for publishing.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// NotificationPublisher publishes every event to a fanout exchange, routed by event name.
type NotificationPublisher struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string

	mu sync.Mutex
}

// Dial connects to url and declares a durable fanout exchange.
func Dial(url, exchange string) (*NotificationPublisher, error) {
	if exchange == "" {
		return nil, errors.New("rabbitmq exchange is required")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	p := NewNotificationPublisher(ch, exchange)
	p.conn = conn
	return p, nil
}

func NewNotificationPublisher(ch Channel, exchange string) *NotificationPublisher {
	return &NotificationPublisher{ch: ch, exchange: exchange}
}

func (p *NotificationPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, event := range events {
		if event == nil {
			continue
		}

		body, err := messaging.Encode(event)
		if err != nil {
			return err
		}

		err = p.ch.PublishWithContext(ctx, p.exchange, event.EventName(), false, false, amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Type:         event.EventName(),
			MessageId:    event.AggregateID().String(),
			Timestamp:    event.OccurredAt().UTC(),
			Body:         body,
		})
		if err != nil {
			return fmt.Errorf("failed to publish %s to %s: %w", event.EventName(), p.exchange, err)
		}
	}

	return nil
}

func (p *NotificationPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
