package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/megapixel-app/megapixel-api/internal/models"
	"github.com/megapixel-app/megapixel-api/internal/service"
	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
	"github.com/megapixel-app/megapixel-api/pkg/response"
)

type classService interface {
	ListApproved(ctx context.Context) ([]models.Class, error)
	ListAll(ctx context.Context) ([]models.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]models.Class, error)
	Submit(ctx context.Context, req service.SubmitClassRequest) (*models.Class, error)
	Review(ctx context.Context, id string, req service.ReviewClassRequest) (*models.Class, error)
	SetFeedback(ctx context.Context, id string, req service.FeedbackRequest) error
	DecrementSeats(ctx context.Context, id string) (*models.Class, error)
}

type ClassHandler struct {
	classes classService
	logger  *zap.Logger
}

func NewClassHandler(classes classService, logger *zap.Logger) *ClassHandler {
	return &ClassHandler{classes: classes, logger: logger}
}

// ListApproved godoc
// @Summary List approved classes
// @Description Public catalog ordered by remaining seats, cache-backed
// @Tags classes
// @Produce json
// @Success 200 {array} models.Class
// @Router /classes [get]
func (h *ClassHandler) ListApproved(c *gin.Context) {
	classes, err := h.classes.ListApproved(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// ListAll godoc
// @Summary List all classes in every review state
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Class
// @Failure 403 {object} response.ErrorBody
// @Router /manageClasses [get]
func (h *ClassHandler) ListAll(c *gin.Context) {
	classes, err := h.classes.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// ListByInstructor godoc
// @Summary List classes submitted by an instructor
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param email path string true "Instructor email"
// @Success 200 {array} models.Class
// @Router /instructorsAddedClass/{email} [get]
func (h *ClassHandler) ListByInstructor(c *gin.Context) {
	classes, err := h.classes.ListByInstructor(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// Submit godoc
// @Summary Submit a class for review
// @Description New submissions always start in pending review
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.SubmitClassRequest true "Class payload"
// @Success 201 {object} models.Class
// @Failure 400 {object} response.ErrorBody
// @Router /instructorAddedClasses [post]
func (h *ClassHandler) Submit(c *gin.Context) {
	var req service.SubmitClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload"))
		return
	}

	class, err := h.classes.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Review godoc
// @Summary Approve or deny a pending class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body service.ReviewClassRequest true "Review decision"
// @Success 200 {object} models.Class
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /classes/approve/{id} [put]
func (h *ClassHandler) Review(c *gin.Context) {
	var req service.ReviewClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload"))
		return
	}

	class, err := h.classes.Review(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, class)
}

// SetFeedback godoc
// @Summary Attach reviewer feedback to a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body service.FeedbackRequest true "Feedback"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.ErrorBody
// @Router /classes/feedback/{id} [patch]
func (h *ClassHandler) SetFeedback(c *gin.Context) {
	var req service.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload"))
		return
	}

	if err := h.classes.SetFeedback(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"updated": true})
}

// DecrementSeats godoc
// @Summary Take one seat from a class
// @Description Conditional decrement, answers 409 once the class is sold out
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} models.Class
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /updateavailableseats/{id} [put]
func (h *ClassHandler) DecrementSeats(c *gin.Context) {
	class, err := h.classes.DecrementSeats(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, class)
}
