package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/megapixel-app/megapixel-api/internal/models"
	"github.com/megapixel-app/megapixel-api/internal/service"
	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
	"github.com/megapixel-app/megapixel-api/pkg/response"
)

type enrollmentService interface {
	RecordPayment(ctx context.Context, studentEmail string, req service.PaymentRequest) (*service.PaymentResult, error)
	ListByStudent(ctx context.Context, email string) ([]models.EnrolledClass, error)
	Receipt(ctx context.Context, email string) ([]byte, error)
}

type EnrollmentHandler struct {
	enrollments enrollmentService
	logger      *zap.Logger
}

func NewEnrollmentHandler(enrollments enrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, logger: logger}
}

// RecordPayment godoc
// @Summary Record a completed payment
// @Description Enrolls the student and clears the matching cart rows in one transaction
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PaymentRequest true "Payment payload"
// @Success 201 {object} service.PaymentResult
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /payments [post]
func (h *EnrollmentHandler) RecordPayment(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload"))
		return
	}

	result, err := h.enrollments.RecordPayment(c.Request.Context(), claims.Email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListByStudent godoc
// @Summary List a student's enrolled classes
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {array} models.EnrolledClass
// @Router /myEnrolledClass/{email} [get]
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	enrollments, err := h.enrollments.ListByStudent(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollments)
}

// Receipt godoc
// @Summary Download an enrollment receipt
// @Tags enrollments
// @Produce octet-stream
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {file} binary
// @Router /myEnrolledClass/{email}/receipt [get]
func (h *EnrollmentHandler) Receipt(c *gin.Context) {
	out, err := h.enrollments.Receipt(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.logger.Error("receipt render failed", zap.String("email", c.Param("email")), zap.Error(err))
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", time.Now().Format("20060102")))
	c.Data(http.StatusOK, "application/pdf", out)
}
