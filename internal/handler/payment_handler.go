package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/megapixel-app/megapixel-api/internal/service"
	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
	"github.com/megapixel-app/megapixel-api/pkg/response"
)

type paymentService interface {
	CreateIntent(ctx context.Context, req service.PaymentIntentRequest) (*service.PaymentIntentResponse, error)
}

type PaymentHandler struct {
	payments paymentService
	logger   *zap.Logger
}

func NewPaymentHandler(payments paymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: logger}
}

// CreateIntent godoc
// @Summary Create a payment intent
// @Description Asks the payment processor for a client secret covering the given price
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PaymentIntentRequest true "Amount"
// @Success 200 {object} service.PaymentIntentResponse
// @Failure 400 {object} response.ErrorBody
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req service.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment intent payload"))
		return
	}

	intent, err := h.payments.CreateIntent(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("payment intent failed", zap.Error(err))
		response.Error(c, err)
		return
	}
	response.OK(c, intent)
}
