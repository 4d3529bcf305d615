// Package kafka publishes message events for downstream consumers such as notifications.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/s21platform/skills-messenger/internal/config"
	"github.com/s21platform/skills-messenger/internal/model"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type Producer struct {
	writer writer
}

func New(cfg *config.Config) *Producer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(fmt.Sprintf("%s:%s", cfg.Kafka.Host, cfg.Kafka.Port)),
		Topic:        cfg.Kafka.MessageTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		Async:        true,
	}

	return &Producer{writer: w}
}

// Publish keys events by conversation so that one conversation keeps its order within a partition.
func (p *Producer) Publish(ctx context.Context, event model.MessageEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal message event: %v", err)
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(event.ConversationID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write message event: %v", err)
	}

	return nil
}

func (p *Producer) Close() {
	_ = p.writer.Close()
}

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.MessageEvent) error {
	return nil
}
