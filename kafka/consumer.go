package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/foodgram/pkg/logger"
)

// EventHandler processes one decoded recipe event.
type EventHandler func(ctx context.Context, event RecipeEvent) error

// Consumer reads recipe events from Kafka and dispatches them by event
// type.
type Consumer struct {
	group  sarama.ConsumerGroup
	topics []string

	mu       sync.RWMutex
	handlers map[string]EventHandler
}

func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer group: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("kafka consumer ready")

	return &Consumer{
		group:    group,
		topics:   topics,
		handlers: make(map[string]EventHandler),
	}, nil
}

// RegisterHandler binds a handler to an event type. Events with no
// registered handler are acknowledged and dropped.
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = handler
}

func (c *Consumer) handlerFor(eventType string) (EventHandler, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	handler, ok := c.handlers[eventType]
	return handler, ok
}

// Start launches the consume loop. It returns immediately and keeps
// consuming until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	go func() {
		for {
			if ctx.Err() != nil {
				logger.Logger.Info().Msg("kafka consumer stopping")
				return
			}
			if err := c.group.Consume(ctx, c.topics, &groupHandler{consumer: c}); err != nil {
				logger.Logger.Error().Err(err).Msg("kafka consume failed")
			}
		}
	}()

	go func() {
		for err := range c.group.Errors() {
			logger.Logger.Error().Err(err).Msg("kafka consumer group error")
		}
	}()

	return nil
}

func (c *Consumer) Close() error {
	if c.group != nil {
		return c.group.Close()
	}
	return nil
}

type groupHandler struct {
	consumer *Consumer
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.dispatch(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

// dispatch decodes one message and runs its handler inside a consumer
// span continuing the producer's trace. Failures are logged and the
// message is still acknowledged; the recipe-count projection tolerates a
// dropped event better than a stuck partition.
func (h *groupHandler) dispatch(ctx context.Context, message *sarama.ConsumerMessage) {
	eventType := headerValue(message, "event_type")

	carrier := propagation.MapCarrier{}
	for _, header := range message.Headers {
		carrier[string(header.Key)] = string(header.Value)
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	ctx, span := otel.Tracer("kafka-consumer").Start(ctx, "kafka.consume.recipe_event",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.String("event.type", eventType),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
		),
	)
	defer span.End()

	if eventType == "" {
		span.SetStatus(codes.Error, "missing event_type header")
		logger.Warn(ctx).Str("topic", message.Topic).Msg("message without event_type header")
		return
	}

	handler, ok := h.consumer.handlerFor(eventType)
	if !ok {
		logger.Warn(ctx).Str("event_type", eventType).Msg("no handler for event type")
		return
	}

	var event RecipeEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		logger.Error(ctx).Err(err).Str("event_type", eventType).Msg("failed to decode recipe event")
		return
	}
	span.SetAttributes(
		attribute.String("event.id", event.EventID),
		attribute.Int64("recipe.id", int64(event.RecipeID)),
	)

	if err := handler(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
		logger.Error(ctx).
			Err(err).
			Str("event_type", eventType).
			Str("event_id", event.EventID).
			Msg("recipe event handler failed")
		return
	}

	logger.Info(ctx).
		Str("event_type", eventType).
		Str("event_id", event.EventID).
		Uint("recipe_id", event.RecipeID).
		Uint("author_id", event.AuthorID).
		Msg("recipe event handled")
}

func headerValue(message *sarama.ConsumerMessage, key string) string {
	for _, header := range message.Headers {
		if string(header.Key) == key {
			return string(header.Value)
		}
	}
	return ""
}
