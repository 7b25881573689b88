package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/config"
	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
)

// Publisher is the narrow interface services depend on.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// HandlerFunc consumes one event.
type HandlerFunc func(ctx context.Context, msg *message.Message) error

// EventBus publishes domain events and routes them to subscribers.
type EventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	router     *message.Router
	logger     *slog.Logger

	// inProcess is set when publisher and subscriber are one Go channel.
	inProcess bool
}

// NewEventBus creates an event bus over NATS when a URL is configured and an
// in-process Go channel otherwise.
func NewEventBus(cfg config.EventsConfig, logger *slog.Logger, registry *prometheus.Registry) (*EventBus, error) {
	// Create a Watermill logger that wraps slog
	watermillLogger := watermill.NewSlogLogger(logger)

	bus := &EventBus{logger: logger}

	if cfg.NATSURL != "" {
		marshaler := &wmnats.NATSMarshaler{}
		natsOptions := []nc.Option{nc.RetryOnFailedConnect(true)}

		publisher, err := wmnats.NewPublisher(wmnats.PublisherConfig{
			URL:         cfg.NATSURL,
			Marshaler:   marshaler,
			NatsOptions: natsOptions,
			JetStream:   wmnats.JetStreamConfig{Disabled: true},
		}, watermillLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
		}

		subscriber, err := wmnats.NewSubscriber(wmnats.SubscriberConfig{
			URL:              cfg.NATSURL,
			QueueGroupPrefix: "chainchaser",
			Unmarshaler:      marshaler,
			NatsOptions:      natsOptions,
			JetStream:        wmnats.JetStreamConfig{Disabled: true},
		}, watermillLogger)
		if err != nil {
			publisher.Close()
			return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
		}

		bus.publisher = publisher
		bus.subscriber = subscriber
	} else {
		pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermillLogger)
		bus.publisher = pubSub
		bus.subscriber = pubSub
		bus.inProcess = true
	}

	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event router: %w", err)
	}

	if registry != nil {
		metricsBuilder := metrics.NewPrometheusMetricsBuilder(registry, "chainchaser", "events")
		metricsBuilder.AddPrometheusRouterMetrics(router)
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	bus.router = router
	return bus, nil
}

// Publish marshals payload as JSON and publishes it on topic.
func (b *EventBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if id := attr.CorrelationID(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	b.logger.DebugContext(ctx, "Published event",
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
	)
	return nil
}

// Subscribe registers a consuming handler for topic. Call before Run.
func (b *EventBus) Subscribe(handlerName, topic string, fn HandlerFunc) {
	b.router.AddNoPublisherHandler(
		handlerName,
		topic,
		b.subscriber,
		func(msg *message.Message) error {
			ctx := attr.WithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))
			if err := fn(ctx, msg); err != nil {
				b.logger.ErrorContext(ctx, "Error processing message",
					attr.String("handler", handlerName),
					attr.String("message_id", msg.UUID),
					attr.Error(err),
				)
				return err
			}
			return nil
		},
	)
}

// Run blocks running the router until ctx is cancelled.
func (b *EventBus) Run(ctx context.Context) error {
	return b.router.Run(ctx)
}

// Running is closed once the router is running.
func (b *EventBus) Running() chan struct{} {
	return b.router.Running()
}

// Close stops the router and the transport.
func (b *EventBus) Close() error {
	var firstErr error
	if err := b.router.Close(); err != nil {
		firstErr = err
	}
	if err := b.publisher.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if !b.inProcess {
		if err := b.subscriber.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Decode unmarshals a message payload into T.
func Decode[T any](msg *message.Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, fmt.Errorf("failed to decode message %s: %w", msg.UUID, err)
	}
	return v, nil
}
