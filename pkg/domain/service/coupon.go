package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
)

const msgFillInAllFields = "Please fill in all fields"

type CouponInput struct {
	Code     string    `validate:"required"`
	Discount float64   `validate:"required"`
	ExpireAt time.Time `validate:"required"`
}

type CouponService interface {
	CreateCoupon(ctx context.Context, input CouponInput) (*model.Coupon, error)
	ApplyDiscount(ctx context.Context, code string) (float64, error)
	AllCoupons(ctx context.Context) ([]model.Coupon, error)
	DeleteCoupon(ctx context.Context, id string) error
}

func NewCouponService(repo model.CouponRepository, dispatcher domain.EventDispatcher, now func() time.Time) CouponService {
	if now == nil {
		now = time.Now
	}
	return &couponService{repo: repo, dispatcher: dispatcher, now: now, validate: validator.New()}
}

type couponService struct {
	repo       model.CouponRepository
	dispatcher domain.EventDispatcher
	now        func() time.Time
	validate   *validator.Validate
}

func (s *couponService) CreateCoupon(ctx context.Context, input CouponInput) (*model.Coupon, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, model.NewValidationError(msgFillInAllFields)
	}

	couponID, err := model.NewID()
	if err != nil {
		return nil, err
	}

	coupon := &model.Coupon{
		ID:       couponID,
		Code:     input.Code,
		Discount: input.Discount,
		ExpireAt: input.ExpireAt,
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	dispatch(s.dispatcher, model.CouponCreated{CouponID: couponID, Code: coupon.Code})
	return coupon, nil
}

func (s *couponService) ApplyDiscount(ctx context.Context, code string) (float64, error) {
	coupon, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, model.ErrCouponNotFound) {
		return 0, model.ErrInvalidCoupon
	}
	if err != nil {
		return 0, err
	}
	if coupon.Expired(s.now()) {
		return 0, model.ErrCouponExpired
	}
	return coupon.Discount, nil
}

func (s *couponService) AllCoupons(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(coupons) == 0 {
		return nil, model.ErrNoCoupons
	}
	return coupons, nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, id string) error {
	if err := model.ValidateID(id); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
