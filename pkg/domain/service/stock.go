package service

import (
	"context"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
)

type StockReducer interface {
	// Reduce decrements stock item by item. There is no floor and earlier
	// decrements stay applied when a later product is missing.
	Reduce(ctx context.Context, items []model.OrderItem) error
}

func NewStockReducer(repo model.ProductRepository, dispatcher domain.EventDispatcher) StockReducer {
	return &stockReducer{repo: repo, dispatcher: dispatcher}
}

type stockReducer struct {
	repo       model.ProductRepository
	dispatcher domain.EventDispatcher
}

func (s *stockReducer) Reduce(ctx context.Context, items []model.OrderItem) error {
	for _, item := range items {
		product, err := s.repo.FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		product.Stock -= item.Quantity
		if err := s.repo.Update(ctx, product); err != nil {
			return err
		}
		dispatch(s.dispatcher, model.ProductStockChanged{
			ProductID:    product.ID,
			ChangeAmount: -item.Quantity,
			NewQuantity:  product.Stock,
		})
	}
	return nil
}
