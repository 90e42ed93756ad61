package memory

import (
	"context"

	"storefront/pkg/domain/model"
)

func NewProductRepository() model.ProductRepository {
	return &productRepository{products: newCollection[model.Product](productField, nil)}
}

type productRepository struct {
	products *collection[model.Product]
}

func productField(p model.Product, field string) (interface{}, bool) {
	switch field {
	case model.FieldID:
		return p.ID, true
	case model.FieldName:
		return p.Name, true
	case model.FieldPrice:
		return p.Price, true
	case model.FieldCategory:
		return p.Category, true
	case model.FieldStock:
		return p.Stock, true
	case model.FieldCreatedAt:
		return p.CreatedAt, true
	}
	return nil, false
}

func (r *productRepository) Create(_ context.Context, product *model.Product) error {
	r.products.insert(product.ID, *product)
	return nil
}

func (r *productRepository) Update(_ context.Context, product *model.Product) error {
	if !r.products.replace(product.ID, *product) {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(_ context.Context, id string) error {
	if !r.products.remove(id) {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) FindByID(_ context.Context, id string) (*model.Product, error) {
	product, ok := r.products.get(id)
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return &product, nil
}

func (r *productRepository) Find(_ context.Context, query model.Query) ([]model.Product, error) {
	return r.products.find(query)
}

func (r *productRepository) Count(_ context.Context, filter model.Filter) (int64, error) {
	return r.products.count(filter)
}

func (r *productRepository) Distinct(_ context.Context, field string, filter model.Filter) ([]string, error) {
	return r.products.distinct(field, filter)
}
