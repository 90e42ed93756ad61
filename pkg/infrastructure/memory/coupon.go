package memory

import (
	"context"
	"sync"

	"storefront/pkg/domain/model"
)

func NewCouponRepository() model.CouponRepository {
	return &couponRepository{coupons: newCollection[model.Coupon](couponField, nil)}
}

type couponRepository struct {
	// mu serializes Create so the code uniqueness check holds.
	mu      sync.Mutex
	coupons *collection[model.Coupon]
}

func couponField(c model.Coupon, field string) (interface{}, bool) {
	switch field {
	case model.FieldID:
		return c.ID, true
	case model.FieldCode:
		return c.Code, true
	}
	return nil, false
}

func (r *couponRepository) Create(_ context.Context, coupon *model.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, err := r.coupons.count(model.NewFilter().Eq(model.FieldCode, coupon.Code).Build())
	if err != nil {
		return err
	}
	if n > 0 {
		return model.ErrCouponCodeTaken
	}
	r.coupons.insert(coupon.ID, *coupon)
	return nil
}

func (r *couponRepository) Delete(_ context.Context, id string) error {
	if !r.coupons.remove(id) {
		return model.ErrCouponNotFound
	}
	return nil
}

func (r *couponRepository) FindByID(_ context.Context, id string) (*model.Coupon, error) {
	coupon, ok := r.coupons.get(id)
	if !ok {
		return nil, model.ErrCouponNotFound
	}
	return &coupon, nil
}

func (r *couponRepository) FindByCode(_ context.Context, code string) (*model.Coupon, error) {
	found, err := r.coupons.find(model.Query{Filter: model.NewFilter().Eq(model.FieldCode, code).Build(), Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, model.ErrCouponNotFound
	}
	return &found[0], nil
}

func (r *couponRepository) FindAll(_ context.Context) ([]model.Coupon, error) {
	return r.coupons.find(model.Query{})
}
