package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/product-catalog/internal/kafka"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/repository"
	"github.com/nguyentranbao-ct/product-catalog/pkg/logger"
)

type productUsecase struct {
	repo      repository.ProductRepository
	publisher kafka.Publisher
	log       *zap.SugaredLogger
	newID     func() string
	now       func() time.Time
}

func NewProductUsecase(repo repository.ProductRepository, publisher kafka.Publisher, log *zap.SugaredLogger) ProductUsecase {
	return &productUsecase{
		repo:      repo,
		publisher: publisher,
		log:       log,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

func (uc *productUsecase) GetProduct(ctx context.Context, id string) (models.Item, error) {
	item, err := uc.repo.Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Item{}, nil
	}
	if err != nil {
		return nil, uc.fail(ctx, err, "get product %q", id)
	}
	return item, nil
}

func (uc *productUsecase) ListProducts(ctx context.Context) ([]models.Item, error) {
	items, err := uc.repo.Scan(ctx)
	if err != nil {
		return nil, uc.fail(ctx, err, "list products")
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// CreateProduct stores the payload as-is under a fresh id. A client supplied id is overwritten.
func (uc *productUsecase) CreateProduct(ctx context.Context, payload models.Item) (*models.WriteAck, error) {
	item := payload.Clone()
	if item == nil {
		item = models.Item{}
	}
	id := uc.newID()
	item[models.AttrID] = id

	if err := uc.repo.Put(ctx, item); err != nil {
		return nil, uc.fail(ctx, err, "create product")
	}

	uc.publish(ctx, models.ProductCreated, id, item)
	return &models.WriteAck{ID: id}, nil
}

func (uc *productUsecase) UpdateProduct(ctx context.Context, id string, patch models.Item) (*models.WriteAck, error) {
	attrs := patch.Settable()
	if len(attrs) == 0 {
		return &models.WriteAck{ID: id}, nil
	}

	updated, err := uc.repo.Update(ctx, id, attrs)
	if err != nil {
		return nil, uc.fail(ctx, err, "update product %q", id)
	}

	uc.publish(ctx, models.ProductUpdated, id, updated)
	return &models.WriteAck{ID: id, Attributes: updated}, nil
}

func (uc *productUsecase) DeleteProduct(ctx context.Context, id string) (*models.WriteAck, error) {
	removed, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, uc.fail(ctx, err, "delete product %q", id)
	}

	if removed != nil {
		uc.publish(ctx, models.ProductDeleted, id, removed)
	}
	return &models.WriteAck{ID: id, Attributes: removed}, nil
}

func (uc *productUsecase) fail(ctx context.Context, err error, format string, args ...any) error {
	err = errors.Wrapf(err, format, args...)
	logger.Ctx(ctx, uc.log).Errorw("store operation failed", "error", err)
	return err
}

func (uc *productUsecase) publish(ctx context.Context, typ models.ProductEventType, id string, item models.Item) {
	event := models.ProductEvent{
		Type:       typ,
		ProductID:  id,
		Item:       item,
		OccurredAt: uc.now().UTC(),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		logger.Ctx(ctx, uc.log).Warnw("failed to publish product event",
			"type", typ,
			"product_id", id,
			"error", err,
		)
	}
}
