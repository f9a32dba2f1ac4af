package dynamodb

import (
	"context"
	"errors"
	"maps"
	"regexp"
	"slices"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

var setClause = regexp.MustCompile(`(#\w+)\s*=\s*(:\w+)`)

// fakeTable keeps items in memory and answers the calls the store makes.
type fakeTable struct {
	items    map[string]map[string]types.AttributeValue
	pageSize int
	err      error

	lastUpdate *dynamodb.UpdateItemInput
	scans      int
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: map[string]map[string]types.AttributeValue{}, pageSize: 100}
}

func keyOf(t map[string]types.AttributeValue) string {
	if s, ok := t["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeTable) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeTable) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.items[keyOf(in.Item)] = maps.Clone(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastUpdate = in
	id := keyOf(in.Key)
	item, ok := f.items[id]
	if !ok {
		item = maps.Clone(in.Key)
	}
	for _, m := range setClause.FindAllStringSubmatch(aws.ToString(in.UpdateExpression), -1) {
		item[in.ExpressionAttributeNames[m[1]]] = in.ExpressionAttributeValues[m[2]]
	}
	f.items[id] = item
	return &dynamodb.UpdateItemOutput{Attributes: maps.Clone(item)}, nil
}

func (f *fakeTable) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := keyOf(in.Key)
	old := f.items[id]
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{Attributes: old}, nil
}

func (f *fakeTable) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.scans++
	ids := slices.Sorted(maps.Keys(f.items))
	start := 0
	if in.ExclusiveStartKey != nil {
		start = slices.Index(ids, keyOf(in.ExclusiveStartKey)) + 1
	}
	end := min(start+f.pageSize, len(ids))

	out := &dynamodb.ScanOutput{}
	for _, id := range ids[start:end] {
		out.Items = append(out.Items, f.items[id])
	}
	if end < len(ids) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: ids[end-1]},
		}
	}
	return out, nil
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	table := newFakeTable()
	repo := NewProductRepository(table, "products")

	err := repo.Put(ctx, models.Item{"id": "p1", "name": "Waffle", "price": 12.5, "category": "Dessert"})
	require.NoError(t, err)

	assert.Equal(t, &types.AttributeValueMemberN{Value: "12.5"}, table.items["p1"]["price"])

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.Item{"id": "p1", "name": "Waffle", "price": 12.5, "category": "Dessert"}, got)
}

func TestGetMissing(t *testing.T) {
	repo := NewProductRepository(newFakeTable(), "products")

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestScanFollowsPages(t *testing.T) {
	ctx := context.Background()
	table := newFakeTable()
	table.pageSize = 2
	repo := NewProductRepository(table, "products")

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, repo.Put(ctx, models.Item{"id": id, "name": id}))
	}

	items, err := repo.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, 3, table.scans)
	assert.Equal(t, "e", items[4].ID())
}

func TestScanEmptyTable(t *testing.T) {
	items, err := NewProductRepository(newFakeTable(), "products").Scan(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestUpdateSetsOnlyGivenAttributes(t *testing.T) {
	ctx := context.Background()
	table := newFakeTable()
	repo := NewProductRepository(table, "products")
	require.NoError(t, repo.Put(ctx, models.Item{"id": "p1", "name": "Waffle", "price": "10", "category": "Dessert"}))

	got, err := repo.Update(ctx, "p1", models.Item{"price": "11", "size.large": true})
	require.NoError(t, err)

	assert.Equal(t, models.Item{"id": "p1", "name": "Waffle", "price": "11", "category": "Dessert", "size.large": true}, got)
	assert.Equal(t, types.ReturnValueAllNew, table.lastUpdate.ReturnValues)
	assert.ElementsMatch(t, []string{"price", "size.large"}, slices.Collect(maps.Values(table.lastUpdate.ExpressionAttributeNames)))
}

func TestUpdateWithoutAttributes(t *testing.T) {
	_, err := NewProductRepository(newFakeTable(), "products").Update(context.Background(), "p1", models.Item{})
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(newFakeTable(), "products")
	require.NoError(t, repo.Put(ctx, models.Item{"id": "p1", "name": "Waffle"}))

	old, err := repo.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.Item{"id": "p1", "name": "Waffle"}, old)

	old, err = repo.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, old)

	_, err = repo.Get(ctx, "p1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestErrorsCarryContext(t *testing.T) {
	table := newFakeTable()
	table.err = errors.New("throttled")
	repo := NewProductRepository(table, "products")

	_, err := repo.Get(context.Background(), "p1")
	require.Error(t, err)
	assert.Equal(t, "get item: throttled", err.Error())
}
