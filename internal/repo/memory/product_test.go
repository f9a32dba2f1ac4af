package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, repo.Put(ctx, models.Item{"id": "b", "name": "Bagel", "price": "2"}))
	require.NoError(t, repo.Put(ctx, models.Item{"id": "a", "name": "Apple", "price": 1.5}))

	items, err := repo.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID())
	assert.Equal(t, "b", items[1].ID())

	updated, err := repo.Update(ctx, "b", models.Item{"price": "3", "color": "brown"})
	require.NoError(t, err)
	assert.Equal(t, models.Item{"id": "b", "name": "Bagel", "price": "3", "color": "brown"}, updated)

	old, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Apple", old["name"])

	old, err = repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestProductRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	item := models.Item{"id": "x", "name": "Original"}
	require.NoError(t, repo.Put(ctx, item))
	item["name"] = "Changed by caller"

	got, err := repo.Get(ctx, "x")
	require.NoError(t, err)
	got["name"] = "Changed again"

	again, err := repo.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "Original", again["name"])
}

func TestUpdateCreatesMissingItem(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	got, err := repo.Update(ctx, "new", models.Item{"name": "Fresh"})
	require.NoError(t, err)
	assert.Equal(t, models.Item{"id": "new", "name": "Fresh"}, got)
}
