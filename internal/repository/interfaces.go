package repository

import (
	"context"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

// ProductRepository is a single-table key-value store keyed by product id.
type ProductRepository interface {
	// Get returns models.ErrNotFound when no item has the id.
	Get(ctx context.Context, id string) (models.Item, error)
	Scan(ctx context.Context) ([]models.Item, error)
	// Put writes the whole item, replacing any item with the same id.
	Put(ctx context.Context, item models.Item) error
	// Update sets the given attributes, creating the item when missing,
	// and returns the attributes the store reports after the write.
	Update(ctx context.Context, id string, attrs models.Item) (models.Item, error)
	// Delete returns the removed item, or nil when there was none.
	Delete(ctx context.Context, id string) (models.Item, error)
}
