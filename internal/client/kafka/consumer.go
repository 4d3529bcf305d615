package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/skills-messenger/internal/config"
)

type reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// ConsumerMetrics counts consumer outcomes per topic.
type ConsumerMetrics struct {
	Consumed      *prometheus.CounterVec
	HandlerFailed *prometheus.CounterVec
	CommitFailed  *prometheus.CounterVec
}

func NewConsumerMetrics(reg prometheus.Registerer) *ConsumerMetrics {
	m := &ConsumerMetrics{
		Consumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "messenger",
			Subsystem: "kafka_consumer",
			Name:      "messages_total",
			Help:      "Messages fetched from the topic.",
		}, []string{"topic"}),
		HandlerFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "messenger",
			Subsystem: "kafka_consumer",
			Name:      "handler_failures_total",
			Help:      "Messages whose handler returned an error.",
		}, []string{"topic"}),
		CommitFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "messenger",
			Subsystem: "kafka_consumer",
			Name:      "commit_failures_total",
			Help:      "Offsets that could not be committed.",
		}, []string{"topic"}),
	}

	reg.MustRegister(m.Consumed, m.HandlerFailed, m.CommitFailed)

	return m
}

type Consumer struct {
	reader  reader
	topic   string
	metrics *ConsumerMetrics
	backoff time.Duration
}

func NewConsumer(cfg *config.Config, topic, groupID string, metrics *ConsumerMetrics) *Consumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  []string{fmt.Sprintf("%s:%s", cfg.Kafka.Host, cfg.Kafka.Port)},
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &Consumer{reader: r, topic: topic, metrics: metrics, backoff: time.Second}
}

// Run feeds every message to handle until ctx is cancelled. A message whose handler
// fails is logged and committed so that one bad record does not stall the group.
func (c *Consumer) Run(ctx context.Context, handle func(ctx context.Context, value []byte) error) error {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			logger.Error(fmt.Sprintf("failed to fetch message: %v", err))

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.backoff):
			}
			continue
		}
		c.metrics.Consumed.WithLabelValues(c.topic).Inc()

		if err := handle(ctx, msg.Value); err != nil {
			c.metrics.HandlerFailed.WithLabelValues(c.topic).Inc()
			logger.Error(fmt.Sprintf("failed to handle message at offset %d: %v", msg.Offset, err))
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.metrics.CommitFailed.WithLabelValues(c.topic).Inc()
			logger.Error(fmt.Sprintf("failed to commit offset %d: %v", msg.Offset, err))
		}
	}
}

func (c *Consumer) Close() {
	_ = c.reader.Close()
}
