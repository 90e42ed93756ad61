package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
)

const msgFillAllFields = "Please fill all the fields"

type NewOrderInput struct {
	ShippingInfo   *model.ShippingInfo `validate:"required"`
	Items          []model.OrderItem   `validate:"required"`
	UserID         string              `validate:"required"`
	Subtotal       float64             `validate:"required"`
	Tax            float64             `validate:"required"`
	ShippingCharge float64
	Discount       float64
	Total          float64 `validate:"required"`
}

type OrderService interface {
	PlaceOrder(ctx context.Context, input NewOrderInput) (*model.Order, error)
	MyOrders(ctx context.Context, userID string) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ProcessOrder(ctx context.Context, id string) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

func NewOrderService(
	repo model.OrderRepository,
	stock StockReducer,
	cache Cache,
	dispatcher domain.EventDispatcher,
) OrderService {
	return &orderService{
		repo:        repo,
		stock:       stock,
		codec:       NewCacheCodec(cache),
		invalidator: NewCacheInvalidator(cache),
		dispatcher:  dispatcher,
		validate:    validator.New(),
	}
}

type orderService struct {
	repo        model.OrderRepository
	stock       StockReducer
	codec       *CacheCodec
	invalidator CacheInvalidator
	dispatcher  domain.EventDispatcher
	validate    *validator.Validate
}

func (s *orderService) PlaceOrder(ctx context.Context, input NewOrderInput) (*model.Order, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, model.NewValidationError(msgFillAllFields)
	}

	orderID, err := model.NewID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:             orderID,
		ShippingInfo:   *input.ShippingInfo,
		UserID:         input.UserID,
		Subtotal:       input.Subtotal,
		Tax:            input.Tax,
		ShippingCharge: input.ShippingCharge,
		Discount:       input.Discount,
		Total:          input.Total,
		Status:         model.Processing,
		Items:          input.Items,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	// The order is stored and stock may be partly reduced even when Reduce
	// fails, so the caches are cleared on both paths.
	reduceErr := s.stock.Reduce(ctx, order.Items)

	// The new order's own key is left unnamed; nothing can have cached it yet.
	err = s.invalidator.Invalidate(Invalidation{
		Product:    true,
		Order:      true,
		Admin:      true,
		UserID:     order.UserID,
		ProductIDs: order.ProductIDs(),
	})
	if reduceErr != nil {
		if err != nil {
			log.WithError(err).WithField("order", orderID).Error("invalidate after failed stock reduction")
		}
		return nil, reduceErr
	}
	if err != nil {
		return nil, err
	}

	dispatch(s.dispatcher, model.OrderPlaced{OrderID: orderID, UserID: order.UserID, Total: order.Total})
	return order, nil
}

func (s *orderService) MyOrders(ctx context.Context, userID string) ([]model.Order, error) {
	key := MyOrdersKey(userID)
	var orders []model.Order
	if s.codec.Load(key, &orders) {
		return orders, nil
	}

	orders, err := s.repo.Find(ctx, model.Query{Filter: model.NewFilter().Eq(model.FieldUser, userID).Build()})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, model.ErrUserHasNoOrders
	}

	s.codec.Store(key, orders)
	return orders, nil
}

func (s *orderService) AllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if s.codec.Load(KeyAllOrders, &orders) {
		return orders, nil
	}

	orders, err := s.repo.Find(ctx, model.Query{})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, model.ErrNoOrders
	}

	s.codec.Store(KeyAllOrders, orders)
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	if err := model.ValidateID(id); err != nil {
		return nil, err
	}

	key := OrderKey(id)
	order := &model.Order{}
	if s.codec.Load(key, order) {
		return order, nil
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.codec.Store(key, order)
	return order, nil
}

func (s *orderService) ProcessOrder(ctx context.Context, id string) (*model.Order, error) {
	if err := model.ValidateID(id); err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	order.Status = oldStatus.Next()
	order.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	err = s.invalidator.Invalidate(Invalidation{Order: true, Admin: true, UserID: order.UserID, OrderID: order.ID})
	if err != nil {
		return nil, err
	}

	dispatch(s.dispatcher, model.OrderProcessed{OrderID: order.ID, OldStatus: oldStatus, NewStatus: order.Status})
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	if err := model.ValidateID(id); err != nil {
		return err
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	err = s.invalidator.Invalidate(Invalidation{Order: true, Admin: true, UserID: order.UserID, OrderID: order.ID})
	if err != nil {
		return err
	}

	dispatch(s.dispatcher, model.OrderDeleted{OrderID: order.ID, UserID: order.UserID})
	return nil
}
