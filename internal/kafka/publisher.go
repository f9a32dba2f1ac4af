package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

// Publisher emits product change events.
type Publisher interface {
	Publish(ctx context.Context, event models.ProductEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
	log    *zap.SugaredLogger
}

// NewPublisher returns a no-op publisher when kafka is disabled.
func NewPublisher(cfg config.KafkaConfig, log *zap.SugaredLogger) Publisher {
	if !cfg.Enabled {
		return &noopPublisher{log: log}
	}

	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		log: log,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event models.ProductEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal product event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ProductID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write product event: %w", err)
	}

	p.log.Debugw("product event published", "type", event.Type, "product_id", event.ProductID)
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct {
	log *zap.SugaredLogger
}

func (n *noopPublisher) Publish(ctx context.Context, event models.ProductEvent) error {
	n.log.Debugw("kafka disabled, product event dropped", "type", event.Type, "product_id", event.ProductID)
	return nil
}

func (n *noopPublisher) Close() error {
	return nil
}
