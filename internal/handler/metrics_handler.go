package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/megapixel-app/megapixel-api/internal/service"
)

type MetricsHandler struct {
	metrics *service.MetricsService
}

func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Expose serves the Prometheus scrape endpoint.
func (h *MetricsHandler) Expose(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
