package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
	"github.com/megapixel-app/megapixel-api/pkg/payments"
)

type mockIntents struct {
	lastAmount   int64
	lastCurrency string
	intent       *payments.Intent
	err          error
}

func (m *mockIntents) Create(ctx context.Context, amountMinor int64, currency string) (*payments.Intent, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastAmount = amountMinor
	m.lastCurrency = currency
	return m.intent, nil
}

func TestCreateIntent(t *testing.T) {
	intents := &mockIntents{intent: &payments.Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}}
	svc := NewPaymentService(intents, "usd", validator.New(), zap.NewNop())

	res, err := svc.CreateIntent(context.Background(), PaymentIntentRequest{Price: 49.99})
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret", res.ClientSecret)
	assert.Equal(t, int64(49990), intents.lastAmount)
	assert.Equal(t, "usd", intents.lastCurrency)
}

func TestCreateIntentRejectsNonPositivePrice(t *testing.T) {
	svc := NewPaymentService(&mockIntents{}, "usd", validator.New(), zap.NewNop())

	_, err := svc.CreateIntent(context.Background(), PaymentIntentRequest{Price: 0})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.CreateIntent(context.Background(), PaymentIntentRequest{Price: -3})
	require.Error(t, err)
}

func TestCreateIntentProcessorFailure(t *testing.T) {
	intents := &mockIntents{err: errors.New("stripe: card_declined")}
	svc := NewPaymentService(intents, "usd", validator.New(), zap.NewNop())

	_, err := svc.CreateIntent(context.Background(), PaymentIntentRequest{Price: 10})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestCreateIntentDefaultsCurrency(t *testing.T) {
	intents := &mockIntents{intent: &payments.Intent{ID: "pi_1", ClientSecret: "s"}}
	svc := NewPaymentService(intents, "", validator.New(), zap.NewNop())

	_, err := svc.CreateIntent(context.Background(), PaymentIntentRequest{Price: 1})
	require.NoError(t, err)
	assert.Equal(t, "usd", intents.lastCurrency)
}
