package dynamodb

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/repository"
)

var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct {
	client API
	table  string
}

func NewProductRepository(client API, table string) repository.ProductRepository {
	return &productRepo{
		client: client,
		table:  table,
	}
}

func (r *productRepo) key(id string) (map[string]types.AttributeValue, error) {
	key, err := attributevalue.MarshalMap(map[string]string{models.AttrID: id})
	if err != nil {
		return nil, errors.Wrap(err, "marshal key")
	}
	return key, nil
}

func (r *productRepo) Get(ctx context.Context, id string) (models.Item, error) {
	key, err := r.key(id)
	if err != nil {
		return nil, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       key,
	})
	if err != nil {
		return nil, errors.Wrap(err, "get item")
	}
	if len(out.Item) == 0 {
		return nil, models.ErrNotFound
	}

	return unmarshalItem(out.Item)
}

// Scan reads every page of a full table scan.
func (r *productRepo) Scan(ctx context.Context) ([]models.Item, error) {
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})

	items := make([]models.Item, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "scan")
		}
		var pageItems []models.Item
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			return nil, errors.Wrap(err, "unmarshal scanned items")
		}
		items = append(items, pageItems...)
	}
	return items, nil
}

func (r *productRepo) Put(ctx context.Context, item models.Item) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return errors.Wrap(err, "marshal item")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	})
	if err != nil {
		return errors.Wrap(err, "put item")
	}
	return nil
}

// Update builds one SET clause per attribute except the key. Attribute names
// are never split on dots, so "a.b" is a top level attribute.
func (r *productRepo) Update(ctx context.Context, id string, attrs models.Item) (models.Item, error) {
	attrs = attrs.Settable()
	if len(attrs) == 0 {
		return nil, errors.New("update: no attributes to set")
	}
	key, err := r.key(id)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	update := expression.Set(expression.NameNoDotSplit(names[0]), expression.Value(attrs[names[0]]))
	for _, name := range names[1:] {
		update = update.Set(expression.NameNoDotSplit(name), expression.Value(attrs[name]))
	}
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return nil, errors.Wrap(err, "build update expression")
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, errors.Wrap(err, "update item")
	}

	return unmarshalItem(out.Attributes)
}

func (r *productRepo) Delete(ctx context.Context, id string) (models.Item, error) {
	key, err := r.key(id)
	if err != nil {
		return nil, err
	}

	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.table),
		Key:          key,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, errors.Wrap(err, "delete item")
	}
	if len(out.Attributes) == 0 {
		return nil, nil
	}

	return unmarshalItem(out.Attributes)
}

func unmarshalItem(av map[string]types.AttributeValue) (models.Item, error) {
	item := models.Item{}
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, errors.Wrap(err, "unmarshal item")
	}
	return item, nil
}
