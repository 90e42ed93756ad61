package memory

import (
	"context"

	"storefront/pkg/domain/model"
)

func NewOrderRepository() model.OrderRepository {
	return &orderRepository{orders: newCollection[model.Order](orderField, cloneOrder)}
}

type orderRepository struct {
	orders *collection[model.Order]
}

func orderField(o model.Order, field string) (interface{}, bool) {
	switch field {
	case model.FieldID:
		return o.ID, true
	case model.FieldUser:
		return o.UserID, true
	case model.FieldStatus:
		return string(o.Status), true
	case model.FieldCreatedAt:
		return o.CreatedAt, true
	}
	return nil, false
}

func cloneOrder(o model.Order) model.Order {
	if o.Items != nil {
		items := make([]model.OrderItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}

func (r *orderRepository) Create(_ context.Context, order *model.Order) error {
	r.orders.insert(order.ID, *order)
	return nil
}

func (r *orderRepository) Update(_ context.Context, order *model.Order) error {
	if !r.orders.replace(order.ID, *order) {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) Delete(_ context.Context, id string) error {
	if !r.orders.remove(id) {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) FindByID(_ context.Context, id string) (*model.Order, error) {
	order, ok := r.orders.get(id)
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return &order, nil
}

func (r *orderRepository) Find(_ context.Context, query model.Query) ([]model.Order, error) {
	return r.orders.find(query)
}

func (r *orderRepository) Count(_ context.Context, filter model.Filter) (int64, error) {
	return r.orders.count(filter)
}
