package kafka

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
)

var ErrConsumerDisabled = errors.New("kafka is disabled, set KAFKA_ENABLED=true to consume product events")

// StartConsumer runs the product event consumer for the lifetime of the app.
// The app shuts down when the consumer stops on its own.
func StartConsumer(lc fx.Lifecycle, sd fx.Shutdowner, conf *config.Config, log *zap.SugaredLogger) error {
	if !conf.Kafka.Enabled {
		return ErrConsumerDisabled
	}

	consumer, err := NewConsumer(conf.Kafka, NewLogEventHandler(log.Named("events")), log.Named("kafka"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := consumer.Start(ctx); err != nil {
					log.Errorw("kafka consumer stopped", "error", err)
				}
				if ctx.Err() == nil {
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return consumer.Stop(stopCtx)
		},
	})
	return nil
}
