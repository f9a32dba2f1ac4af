package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/repository"
)

var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

// NewProductRepository returns a process local store, used for development and tests.
func NewProductRepository() repository.ProductRepository {
	return &productRepo{
		items: make(map[string]models.Item),
	}
}

func (r *productRepo) Get(ctx context.Context, id string) (models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return item.Clone(), nil
}

// Scan returns items ordered by id so callers see a stable listing.
func (r *productRepo) Scan(ctx context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item.Clone())
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID() < items[j].ID()
	})
	return items, nil
}

func (r *productRepo) Put(ctx context.Context, item models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID()] = item.Clone()
	return nil
}

func (r *productRepo) Update(ctx context.Context, id string, attrs models.Item) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		item = models.Item{models.AttrID: id}
	}
	for k, v := range attrs.Settable() {
		item[k] = v
	}
	r.items[id] = item
	return item.Clone(), nil
}

func (r *productRepo) Delete(ctx context.Context, id string) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	delete(r.items, id)
	return item, nil
}
