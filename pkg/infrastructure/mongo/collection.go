package mongo

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/pkg/domain/model"
)

// collection holds the operations shared by every repository.
type collection[T any] struct {
	coll     *mongo.Collection
	fields   fields
	notFound error
}

func (c collection[T]) insert(ctx context.Context, doc *T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return errors.Wrapf(err, "insert into %s", c.coll.Name())
}

func (c collection[T]) replace(ctx context.Context, id string, doc *T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return errors.Wrapf(err, "replace in %s", c.coll.Name())
	}
	if res.MatchedCount == 0 {
		return c.notFound
	}
	return nil
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrapf(err, "delete from %s", c.coll.Name())
	}
	if res.DeletedCount == 0 {
		return c.notFound
	}
	return nil
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, c.notFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find one in %s", c.coll.Name())
	}
	return &doc, nil
}

func (c collection[T]) find(ctx context.Context, query model.Query) ([]T, error) {
	filter, err := c.fields.filter(query.Filter)
	if err != nil {
		return nil, err
	}
	opts, err := c.fields.findOptions(query)
	if err != nil {
		return nil, err
	}
	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "find in %s", c.coll.Name())
	}
	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "decode %s", c.coll.Name())
	}
	return docs, nil
}

func (c collection[T]) count(ctx context.Context, f model.Filter) (int64, error) {
	filter, err := c.fields.filter(f)
	if err != nil {
		return 0, err
	}
	n, err := c.coll.CountDocuments(ctx, filter)
	return n, errors.Wrapf(err, "count %s", c.coll.Name())
}

func (c collection[T]) distinct(ctx context.Context, field string, f model.Filter) ([]string, error) {
	if _, ok := c.fields[field]; !ok {
		return nil, errors.Errorf("unsupported distinct field %q", field)
	}
	filter, err := c.fields.filter(f)
	if err != nil {
		return nil, err
	}
	raw, err := c.coll.Distinct(ctx, field, filter)
	if err != nil {
		return nil, errors.Wrapf(err, "distinct %s.%s", c.coll.Name(), field)
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		values = append(values, cast.ToString(v))
	}
	sort.Strings(values)
	return values, nil
}
