package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
	"github.com/nguyentranbao-ct/product-catalog/internal/kafka"
	"github.com/nguyentranbao-ct/product-catalog/internal/repo/dynamodb"
	"github.com/nguyentranbao-ct/product-catalog/internal/repo/memory"
	"github.com/nguyentranbao-ct/product-catalog/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/product-catalog/internal/repository"
)

func newProductRepository(lc fx.Lifecycle, cfg *config.Config, log *zap.SugaredLogger) (repository.ProductRepository, error) {
	if err := cfg.Store.RequireTable(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Infow("opening product store", "driver", cfg.Store.Driver, "table", cfg.Store.TableName)
	switch cfg.Store.Driver {
	case config.DriverDynamoDB:
		client, err := dynamodb.NewClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, fmt.Errorf("init dynamodb client: %w", err)
		}
		return dynamodb.NewProductRepository(client, cfg.Store.TableName), nil

	case config.DriverMongoDB:
		db, err := mongodb.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("init mongo client: %w", err)
		}
		lc.Append(fx.Hook{
			OnStart: db.Ping,
			OnStop:  db.Close,
		})
		return mongodb.NewProductRepository(db, cfg.Store.TableName), nil

	case config.DriverMemory:
		return memory.NewProductRepository(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func newPublisher(lc fx.Lifecycle, cfg *config.Config, log *zap.SugaredLogger) kafka.Publisher {
	publisher := kafka.NewPublisher(cfg.Kafka, log.Named("kafka"))
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
