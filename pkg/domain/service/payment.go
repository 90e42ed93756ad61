package service

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/pkg/domain/model"
)

const (
	msgEnterAmount  = "Please enter amount"
	DefaultCurrency = "usd"
)

// PaymentGateway creates payment intents. Amounts are in minor currency units.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (string, error)
}

func NewPaymentService(gateway PaymentGateway) PaymentService {
	return &paymentService{gateway: gateway}
}

type paymentService struct {
	gateway PaymentGateway
}

func (s *paymentService) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	if amount.IsZero() {
		return "", model.NewValidationError(msgEnterAmount)
	}
	minor := amount.Shift(2).Round(0).IntPart()
	return s.gateway.CreatePaymentIntent(ctx, minor, DefaultCurrency)
}
