package stripe

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type Gateway struct {
	api *client.API
}

// NewGateway talks to the public Stripe API unless apiURL is set,
// e.g. to a local stripe-mock.
func NewGateway(secretKey, apiURL string) *Gateway {
	cfg := &stripe.BackendConfig{LeveledLogger: log.StandardLogger()}
	if apiURL != "" {
		cfg.URL = stripe.String(apiURL)
	}
	return newGateway(secretKey, cfg)
}

func newGateway(secretKey string, cfg *stripe.BackendConfig) *Gateway {
	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
		Connect: stripe.GetBackend(stripe.ConnectBackend),
		Uploads: stripe.GetBackend(stripe.UploadsBackend),
	}
	return &Gateway{api: client.New(secretKey, backends)}
}

func (g *Gateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", errors.Wrap(err, "create payment intent")
	}
	return intent.ClientSecret, nil
}
