package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/foodgram/pkg/logger"
)

// Publisher sends recipe lifecycle events to Kafka.
type Publisher struct {
	producer sarama.SyncProducer
}

func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	logger.Logger.Info().Strs("brokers", brokers).Msg("kafka publisher ready")
	return &Publisher{producer: producer}, nil
}

// PublishRecipeEvent emits one event to the recipe-events topic. Messages
// are keyed by author id so events for one author stay ordered within a
// partition.
func (p *Publisher) PublishRecipeEvent(ctx context.Context, eventType string, event RecipeEvent) error {
	ctx, span := otel.Tracer("kafka-publisher").Start(ctx, "kafka.publish.recipe_event",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicRecipeEvents),
			attribute.String("event.type", eventType),
			attribute.Int64("recipe.id", int64(event.RecipeID)),
		),
	)
	defer span.End()

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.EventType = eventType
	event.Timestamp = time.Now()
	span.SetAttributes(attribute.String("event.id", event.EventID))

	payload, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marshal failed")
		return fmt.Errorf("marshal event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic:   TopicRecipeEvents,
		Key:     sarama.StringEncoder("author-" + strconv.FormatUint(uint64(event.AuthorID), 10)),
		Value:   sarama.ByteEncoder(payload),
		Headers: p.headers(ctx, event),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		logger.Error(ctx).
			Err(err).
			Str("event_type", eventType).
			Uint("recipe_id", event.RecipeID).
			Msg("failed to publish recipe event")
		return fmt.Errorf("send to kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("event_type", eventType).
		Uint("recipe_id", event.RecipeID).
		Uint("author_id", event.AuthorID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("recipe event published")
	return nil
}

// headers carries the event metadata plus the W3C trace context so the
// consumer joins the producer's trace.
func (p *Publisher) headers(ctx context.Context, event RecipeEvent) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(event.EventType)},
		{Key: []byte("event_id"), Value: []byte(event.EventID)},
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
	}
	return headers
}

func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
