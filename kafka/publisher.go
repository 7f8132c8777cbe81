package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pededrink/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	breaker  *Breaker
	now      func() time.Time
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("topic", topic).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer, topic), nil
}

// NewPublisherWithProducer wraps an existing producer.
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		breaker:  NewBreaker("kafka:"+topic, defaultMaxFailures, defaultOpenTimeout),
		now:      time.Now,
	}
}

// PublishSaleRecorded publishes a sale.recorded event
func (p *Publisher) PublishSaleRecorded(ctx context.Context, event SaleRecordedEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.EventType = EventTypeSaleRecorded
	event.Timestamp = p.now()

	return p.publish(ctx, event.EventType, event.EventID, event.ProductID, event,
		attribute.String("sale.id", event.SaleID),
		attribute.String("product.id", event.ProductID),
		attribute.Int("sale.quantity", event.Quantity),
	)
}

// PublishStockAdjusted publishes a stock.adjusted event
func (p *Publisher) PublishStockAdjusted(ctx context.Context, event StockAdjustedEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.EventType = EventTypeStockAdjusted
	event.Timestamp = p.now()

	return p.publish(ctx, event.EventType, event.EventID, event.ProductID, event,
		attribute.String("product.id", event.ProductID),
		attribute.String("stock.operation", event.Operation),
		attribute.Int("stock.new_quantity", event.NewQuantity),
	)
}

// publish sends one event keyed by product so events of a product stay ordered
func (p *Publisher) publish(ctx context.Context, eventType, eventID, productID string, payload interface{}, attrs ...attribute.KeyValue) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", p.topic),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	eventBytes, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.StringEncoder("product_" + productID),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	var partition int32
	var offset int64
	err = p.breaker.Call(func() error {
		var sendErr error
		partition, offset, sendErr = p.producer.SendMessage(msg)
		return sendErr
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published")

	logger.Debug(ctx).
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("product_id", productID).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
