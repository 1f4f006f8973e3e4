package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/megapixel-app/megapixel-api/internal/service"
)

type paymentServiceMock struct {
	response *service.PaymentIntentResponse
	err      error
}

func (m *paymentServiceMock) CreateIntent(ctx context.Context, req service.PaymentIntentRequest) (*service.PaymentIntentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func TestPaymentHandlerCreateIntent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &paymentServiceMock{response: &service.PaymentIntentResponse{ClientSecret: "pi_1_secret"}}
	h := NewPaymentHandler(mock, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(service.PaymentIntentRequest{Price: 49.99})
	c.Request, _ = http.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateIntent(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"clientSecret": "pi_1_secret"}`, w.Body.String())
}

func TestPaymentHandlerCreateIntentInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(&paymentServiceMock{}, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewReader([]byte(`{`)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateIntent(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
