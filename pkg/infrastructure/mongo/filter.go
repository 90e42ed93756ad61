package mongo

import (
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/pkg/domain/model"
)

// fields whitelists the document fields a collection may be filtered or sorted on.
type fields map[string]struct{}

func newFields(names ...string) fields {
	f := make(fields, len(names))
	for _, name := range names {
		f[name] = struct{}{}
	}
	return f
}

var operators = map[model.Operator]string{
	model.OpEq:  "$eq",
	model.OpGt:  "$gt",
	model.OpGte: "$gte",
	model.OpLt:  "$lt",
	model.OpLte: "$lte",
}

func (f fields) filter(filter model.Filter) (bson.M, error) {
	out := bson.M{}
	for _, p := range filter {
		if _, ok := f[p.Field]; !ok {
			return nil, errors.Errorf("unsupported filter field %q", p.Field)
		}
		cond, _ := out[p.Field].(bson.M)
		if cond == nil {
			cond = bson.M{}
			out[p.Field] = cond
		}
		if p.Operator == model.OpContainsFold {
			value, _ := p.Value.(string)
			cond["$regex"] = regexp.QuoteMeta(value)
			cond["$options"] = "i"
			continue
		}
		op, ok := operators[p.Operator]
		if !ok {
			return nil, errors.Errorf("unsupported operator %q", p.Operator)
		}
		cond[op] = p.Value
	}
	return out, nil
}

func (f fields) findOptions(query model.Query) (*options.FindOptions, error) {
	opts := options.Find()
	if query.Sort != nil {
		if _, ok := f[query.Sort.Field]; !ok {
			return nil, errors.Errorf("unsupported sort field %q", query.Sort.Field)
		}
		opts.SetSort(bson.D{{Key: query.Sort.Field, Value: int(query.Sort.Order)}})
	}
	if query.Skip > 0 {
		opts.SetSkip(query.Skip)
	}
	if query.Limit > 0 {
		opts.SetLimit(query.Limit)
	}
	return opts, nil
}
