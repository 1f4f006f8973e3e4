package service

import (
	"context"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
	"github.com/megapixel-app/megapixel-api/pkg/payments"
)

// PaymentIntentRequest asks the processor to open an intent for a price in
// major units.
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// PaymentIntentResponse hands the client-usable secret back to the front end.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentService is the pass-through to the payment processor.
type PaymentService struct {
	intents   payments.PaymentIntents
	currency  string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs PaymentService.
func NewPaymentService(intents payments.PaymentIntents, currency string, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{intents: intents, currency: currency, validator: validate, logger: logger}
}

// CreateIntent opens a card payment intent. The amount uses the legacy
// minor-unit factor of 1000.
func (s *PaymentService) CreateIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment intent payload")
	}

	amount := int64(math.Round(req.Price * 1000))
	intent, err := s.intents.Create(ctx, amount, s.currency)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create payment intent")
	}

	s.logger.Info("payment intent created", zap.String("intent_id", intent.ID), zap.Int64("amount_minor", amount))
	return &PaymentIntentResponse{ClientSecret: intent.ClientSecret}, nil
}
