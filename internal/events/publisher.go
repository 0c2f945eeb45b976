package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// DefaultTopic is the single stream all domain events are published to
const DefaultTopic = "marketplace.events"

// EventPublisher publishes domain events to the audit and integration stream
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// watermillPublisher wraps any watermill publisher behind EventPublisher
type watermillPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

// NewKafkaEventPublisher creates a publisher backed by Kafka brokers
func NewKafkaEventPublisher(brokers []string, logger *slog.Logger) (EventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &watermillPublisher{
		publisher: publisher,
		topic:     DefaultTopic,
		logger:    logger,
	}, nil
}

// NewGoChannelEventPublisher creates an in-process publisher. Used when no
// brokers are configured so the service still runs with a working event path.
func NewGoChannelEventPublisher(logger *slog.Logger) EventPublisher {
	publisher := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewSlogLogger(logger),
	)

	return &watermillPublisher{
		publisher: publisher,
		topic:     DefaultTopic,
		logger:    logger,
	}
}

func (p *watermillPublisher) Publish(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", event.Type)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	p.logger.Debug("event published", "event_type", event.Type, "event_id", event.ID)
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}
