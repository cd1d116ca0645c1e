package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
)

var mPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "uptimer_kafka_published_total", Help: "Messages handed to kafka, by topic and result",
}, []string{"topic", "result"})

type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// messageWriter is the part of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes protobuf values to a single topic. Messages with the
// same key land on the same partition.
type Producer struct {
	w     messageWriter
	topic string
	log   *zap.Logger
}

func NewProducer(cfg ProducerConfig) *Producer {
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}
	return newProducer(w, cfg.Topic, zap.L())
}

func newProducer(w messageWriter, topic string, l *zap.Logger) *Producer {
	return &Producer{w: w, topic: topic, log: l.With(zap.String("component", "kafka.producer"), zap.String("topic", topic))}
}

func (p *Producer) WithLogger(l *zap.Logger) *Producer {
	if l == nil {
		return p
	}
	return newProducer(p.w, p.topic, l)
}

// PublishProto writes m under key with the caller's trace context in the headers.
func (p *Producer) PublishProto(ctx context.Context, key []byte, m proto.Message) error {
	value, err := proto.Marshal(m)
	if err != nil {
		mPublished.WithLabelValues(p.topic, "marshal_error").Inc()
		return fmt.Errorf("marshal %T: %w", m, err)
	}

	ctx, span := otel.Tracer("kafka.producer").Start(ctx, "kafka.produce "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingOperationPublish,
			attribute.String("messaging.kafka.message.key", string(key)),
			attribute.Int("messaging.message.body.size", len(value)),
		),
	)
	defer span.End()

	hdrs := outHeaders{}
	otel.GetTextMapPropagator().Inject(ctx, hdrs)

	if err := p.w.WriteMessages(ctx, kafka.Message{Key: key, Value: value, Headers: hdrs.kafka()}); err != nil {
		mPublished.WithLabelValues(p.topic, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "write")
		p.log.Warn("kafka write failed", zap.ByteString("key", key), zap.Error(err))
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	mPublished.WithLabelValues(p.topic, "ok").Inc()
	p.log.Debug("message published", zap.ByteString("key", key), zap.Int("bytes", len(value)))
	return nil
}

func (p *Producer) Close() error { return p.w.Close() }
