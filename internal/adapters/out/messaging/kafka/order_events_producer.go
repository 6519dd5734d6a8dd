// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/IBM/sarama"
)

const orderEventPrefix = "order."

// OrderEventsProducer sends order.* events to one topic keyed by order id, so all
// changes of an order land on the same partition in commit order. Other events are ignored.
type OrderEventsProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewOrderEventsProducer connects a synchronous producer to brokers.
func NewOrderEventsProducer(brokers []string, topic string) (*OrderEventsProducer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewOrderEventsProducerWithClient(producer, topic)
}

func NewOrderEventsProducerWithClient(producer sarama.SyncProducer, topic string) (*OrderEventsProducer, error) {
	if producer == nil {
		return nil, errors.New("kafka producer is required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	return &OrderEventsProducer{producer: producer, topic: topic}, nil
}

func (p *OrderEventsProducer) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for _, event := range events {
		if event == nil || !strings.HasPrefix(event.EventName(), orderEventPrefix) {
			continue
		}

		body, err := messaging.Encode(event)
		if err != nil {
			return err
		}

		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(event.AggregateID().String()),
			Value: sarama.ByteEncoder(body),
			Headers: []sarama.RecordHeader{
				{Key: []byte("event"), Value: []byte(event.EventName())},
			},
			Timestamp: event.OccurredAt(),
		})
	}

	if len(msgs) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.producer.SendMessages(msgs); err != nil {
		return fmt.Errorf("failed to send %d order events to %s: %w", len(msgs), p.topic, err)
	}
	return nil
}

func (p *OrderEventsProducer) Close() error {
	return p.producer.Close()
}
