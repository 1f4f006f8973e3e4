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

type selectionService interface {
	Select(ctx context.Context, studentEmail string, req service.SelectClassRequest) (*models.SelectedClass, error)
	ListByStudent(ctx context.Context, email string) ([]models.SelectedClassDetail, error)
	Find(ctx context.Context, id string) (*models.SelectedClassDetail, error)
	Remove(ctx context.Context, id string) error
}

type SelectionHandler struct {
	selections selectionService
	logger     *zap.Logger
}

func NewSelectionHandler(selections selectionService, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{selections: selections, logger: logger}
}

// Select godoc
// @Summary Add a class to the caller's cart
// @Tags selections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.SelectClassRequest true "Class reference"
// @Success 201 {object} models.SelectedClass
// @Failure 404 {object} response.ErrorBody
// @Router /selectedClass [post]
func (h *SelectionHandler) Select(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SelectClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload"))
		return
	}

	selection, err := h.selections.Select(c.Request.Context(), claims.Email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, selection)
}

// ListByStudent godoc
// @Summary List a student's selected classes
// @Tags selections
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {array} models.SelectedClassDetail
// @Router /myclass/{email} [get]
func (h *SelectionHandler) ListByStudent(c *gin.Context) {
	selections, err := h.selections.ListByStudent(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, selections)
}

// Find godoc
// @Summary Fetch a single selection
// @Tags selections
// @Produce json
// @Param id path string true "Selection ID"
// @Success 200 {object} models.SelectedClassDetail
// @Failure 404 {object} response.ErrorBody
// @Router /findSelectedClass/{id} [get]
func (h *SelectionHandler) Find(c *gin.Context) {
	selection, err := h.selections.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, selection)
}

// Remove godoc
// @Summary Remove a selection from the cart
// @Tags selections
// @Produce json
// @Security BearerAuth
// @Param id path string true "Selection ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.ErrorBody
// @Router /deleteSelectedClass/{id} [delete]
func (h *SelectionHandler) Remove(c *gin.Context) {
	if err := h.selections.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
