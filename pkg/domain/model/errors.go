package model

import "errors"

var (
	ErrInvalidID         = errors.New("invalid id")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserHasNoOrders   = errors.New("user has no orders")
	ErrNoOrders          = errors.New("no orders found")
	ErrUserNotFound      = errors.New("user not found")
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrNoCoupons         = errors.New("no coupons found")
	ErrInvalidCoupon     = errors.New("invalid coupon")
	ErrCouponExpired     = errors.New("coupon has already expired")
	ErrCouponCodeTaken   = errors.New("coupon code is already taken")
	ErrEmailTaken        = errors.New("email is already taken")
	ErrCacheInvalidation = errors.New("cache invalidation failed")
)

// ValidationError is returned before any write when a request misses required data.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
