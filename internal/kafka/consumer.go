package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/pkg/util"
)

type Consumer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// EventHandler processes one decoded product event.
type EventHandler interface {
	HandleEvent(ctx context.Context, event models.ProductEvent) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

type kafkaConsumer struct {
	reader         messageReader
	metrics        *prometheus.HistogramVec
	consumeTimeout time.Duration
	handler        EventHandler
	log            *zap.SugaredLogger
	done           chan struct{}
}

// NewConsumer creates a consumer of product events.
func NewConsumer(cfg config.KafkaConfig, handler EventHandler, log *zap.SugaredLogger) (Consumer, error) {
	if !cfg.Enabled {
		return &noopConsumer{log: log}, nil
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		StartOffset: kafka.LastOffset,
	})
	return newConsumer(reader, handler, log)
}

func newConsumer(reader messageReader, handler EventHandler, log *zap.SugaredLogger) (*kafkaConsumer, error) {
	metrics, err := util.GetHistogramVec("kafka_messages_consumed", "status", "topic", "group")
	if err != nil {
		return nil, fmt.Errorf("get histogram vec: %w", err)
	}

	return &kafkaConsumer{
		reader:         reader,
		metrics:        metrics,
		consumeTimeout: 30 * time.Second,
		handler:        handler,
		log:            log,
		done:           make(chan struct{}),
	}, nil
}

// Start blocks until ctx is canceled or Stop is called.
func (c *kafkaConsumer) Start(ctx context.Context) error {
	groupID := c.reader.Config().GroupID
	c.log.Infof("starting kafka consumer for topic: %s", c.reader.Config().Topic)

	for ctx.Err() == nil {
		select {
		case <-c.done:
			return nil
		default:
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			c.log.Errorw("error fetching message", "error", err)
			continue
		}

		c.processMessage(ctx, msg, groupID)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.log.Errorw("failed to commit message", "error", err)
		}
	}
	return nil
}

func (c *kafkaConsumer) Stop(ctx context.Context) error {
	c.log.Info("stopping kafka consumer")
	close(c.done)
	return c.reader.Close()
}

func (c *kafkaConsumer) processMessage(ctx context.Context, msg kafka.Message, groupID string) {
	start := time.Now()
	lagMs := start.Sub(msg.Time).Milliseconds()

	duration, err := c.handle(ctx, msg)

	code := getCode(err)
	content := "success"
	if err != nil {
		content = err.Error()
	}

	c.log.Logw(getLogLevel(code), content,
		"code", code.String(),
		"duration_ms", duration.Milliseconds(),
		"topic", msg.Topic,
		"partition", msg.Partition,
		"offset", msg.Offset,
		"lag_ms", lagMs,
		"key", string(msg.Key),
		"value", json.RawMessage(msg.Value),
	)

	c.metrics.
		WithLabelValues(code.String(), msg.Topic, groupID).
		Observe(duration.Seconds())
}

func (c *kafkaConsumer) handle(msgCtx context.Context, msg kafka.Message) (duration time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PANIC RECOVER: %+v", r)
		}
	}()

	start := time.Now()
	defer func() {
		duration = time.Since(start)
	}()

	var event models.ProductEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return 0, status.Errorf(codes.InvalidArgument, "unmarshal product event: %v", err)
	}

	ctx, cancel := context.WithTimeout(msgCtx, c.consumeTimeout)
	defer cancel()

	return 0, c.handler.HandleEvent(ctx, event)
}

func getCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return codes.DeadlineExceeded
	}
	if errors.Is(err, context.Canceled) {
		return codes.Canceled
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	if inner := errors.Unwrap(err); inner != nil {
		return getCode(inner)
	}
	return codes.Unknown
}

func getLogLevel(code codes.Code) zapcore.Level {
	switch code {
	case codes.OK:
		return zapcore.InfoLevel
	case codes.Canceled,
		codes.InvalidArgument,
		codes.NotFound,
		codes.AlreadyExists,
		codes.FailedPrecondition,
		codes.Aborted,
		codes.OutOfRange:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// noopConsumer is used when Kafka is disabled
type noopConsumer struct {
	log *zap.SugaredLogger
}

func (n *noopConsumer) Start(ctx context.Context) error {
	n.log.Info("kafka consumer is disabled")
	return nil
}

func (n *noopConsumer) Stop(ctx context.Context) error {
	return nil
}

type logEventHandler struct {
	log *zap.SugaredLogger
}

// NewLogEventHandler logs every product event it receives.
func NewLogEventHandler(log *zap.SugaredLogger) EventHandler {
	return &logEventHandler{log: log}
}

func (h *logEventHandler) HandleEvent(ctx context.Context, event models.ProductEvent) error {
	h.log.Infow("product changed",
		"type", event.Type,
		"product_id", event.ProductID,
		"occurred_at", event.OccurredAt,
		"item", event.Item,
	)
	return nil
}
