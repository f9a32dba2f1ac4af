package mongodb

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/repository"
)

var _ repository.ProductRepository = (*productRepo)(nil)

// productRepo stores one document per product in a collection named after the
// table. The product id lives in _id and is renamed back to id on read. A client
// attribute named _id is dropped, id is the only key source.
type productRepo struct {
	collection *mongo.Collection
}

func NewProductRepository(db *DB, table string) repository.ProductRepository {
	return &productRepo{
		collection: db.Database.Collection(table),
	}
}

func (r *productRepo) Get(ctx context.Context, id string) (models.Item, error) {
	var doc bson.M
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find product")
	}
	return toItem(doc), nil
}

func (r *productRepo) Scan(ctx context.Context) ([]models.Item, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find products")
	}
	defer cursor.Close(ctx)

	items := make([]models.Item, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, pkgerrors.Wrap(err, "decode product")
		}
		items = append(items, toItem(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "cursor error")
	}
	return items, nil
}

func (r *productRepo) Put(ctx context.Context, item models.Item) error {
	doc := toDocument(item)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": item.ID()}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return pkgerrors.Wrap(err, "replace product")
	}
	return nil
}

func (r *productRepo) Update(ctx context.Context, id string, attrs models.Item) (models.Item, error) {
	attrs = attrs.Settable()
	if len(attrs) == 0 {
		return nil, pkgerrors.New("update: no attributes to set")
	}
	set := toDocument(attrs)
	if len(set) == 0 {
		// only _id was given, it is immutable
		item, err := r.Get(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			return models.Item{models.AttrID: id}, nil
		}
		return item, err
	}

	update := bson.M{
		"$set": set,
	}
	updateOpt := options.
		FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc bson.M
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, updateOpt).Decode(&doc)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "update product")
	}
	return toItem(doc), nil
}

func (r *productRepo) Delete(ctx context.Context, id string) (models.Item, error) {
	var doc bson.M
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "delete product")
	}
	return toItem(doc), nil
}

func toDocument(item models.Item) bson.M {
	doc := bson.M{}
	for k, v := range item {
		switch k {
		case "_id":
		case models.AttrID:
			doc["_id"] = v
		default:
			doc[k] = v
		}
	}
	return doc
}

func toItem(doc bson.M) models.Item {
	item := models.Item{}
	for k, v := range doc {
		switch k {
		case models.AttrID:
		case "_id":
			item[models.AttrID] = v
		default:
			item[k] = v
		}
	}
	return item
}
