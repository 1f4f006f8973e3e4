package payments

import (
	"context"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// Intent is the client-usable slice of a created payment intent.
type Intent struct {
	ID           string
	ClientSecret string
}

// PaymentIntents creates card payment intents with the processor. Services
// depend on this interface so tests can stub the processor entirely.
type PaymentIntents interface {
	Create(ctx context.Context, amountMinor int64, currency string) (*Intent, error)
}

// StripeClient implements PaymentIntents against the Stripe API.
type StripeClient struct {
	api *client.API
}

// NewStripeClient builds a Stripe-backed payment intent client.
func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

// Create opens a card payment intent for the given amount in minor units.
func (c *StripeClient) Create(ctx context.Context, amountMinor int64, currency string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
