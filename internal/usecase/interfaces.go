package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

// ProductUsecase maps each catalog operation to a single store call.
type ProductUsecase interface {
	// GetProduct returns an empty item when the id is unknown.
	GetProduct(ctx context.Context, id string) (models.Item, error)
	ListProducts(ctx context.Context) ([]models.Item, error)
	CreateProduct(ctx context.Context, payload models.Item) (*models.WriteAck, error)
	UpdateProduct(ctx context.Context, id string, patch models.Item) (*models.WriteAck, error)
	DeleteProduct(ctx context.Context, id string) (*models.WriteAck, error)
}
