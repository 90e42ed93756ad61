package model

import (
	"context"
	"time"
)

type Coupon struct {
	ID       string    `json:"_id" bson:"_id"`
	Code     string    `json:"code" bson:"code"`
	Discount float64   `json:"discount" bson:"discount"`
	ExpireAt time.Time `json:"expireAt" bson:"expireAt"`
}

func (c Coupon) Expired(now time.Time) bool {
	return c.ExpireAt.Before(now)
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *Coupon) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	FindAll(ctx context.Context) ([]Coupon, error)
}
