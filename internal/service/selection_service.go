package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/megapixel-app/megapixel-api/internal/models"
	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
)

type selectionRepository interface {
	Create(ctx context.Context, selection *models.SelectedClass) error
	ListByStudent(ctx context.Context, email string) ([]models.SelectedClassDetail, error)
	FindByID(ctx context.Context, id string) (*models.SelectedClassDetail, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type classReader interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

// SelectClassRequest adds a class to the caller's cart.
type SelectClassRequest struct {
	ClassID string `json:"classId" validate:"required"`
}

// SelectionService manages the pre-payment cart.
type SelectionService struct {
	repo      selectionRepository
	classes   classReader
	validator *validator.Validate
	logger    *zap.Logger
	timeout   time.Duration
}

// NewSelectionService constructs SelectionService.
func NewSelectionService(repo selectionRepository, classes classReader, validate *validator.Validate, logger *zap.Logger, timeout time.Duration) *SelectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionService{repo: repo, classes: classes, validator: validate, logger: logger, timeout: timeout}
}

// Select adds a class to the student's cart. The class must exist.
func (s *SelectionService) Select(ctx context.Context, studentEmail string, req SelectClassRequest) (*models.SelectedClass, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}

	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	if _, err := s.classes.FindByID(sctx, req.ClassID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, storeError(err, "failed to load class")
	}

	selection := &models.SelectedClass{StudentEmail: studentEmail, ClassID: req.ClassID}
	if err := s.repo.Create(sctx, selection); err != nil {
		return nil, storeError(err, "failed to create selection")
	}
	return selection, nil
}

// ListByStudent returns a student's cart.
func (s *SelectionService) ListByStudent(ctx context.Context, email string) ([]models.SelectedClassDetail, error) {
	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	selections, err := s.repo.ListByStudent(sctx, email)
	if err != nil {
		return nil, storeError(err, "failed to list selections")
	}
	return selections, nil
}

// Find returns one cart entry.
func (s *SelectionService) Find(ctx context.Context, id string) (*models.SelectedClassDetail, error) {
	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	selection, err := s.repo.FindByID(sctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selection not found")
		}
		return nil, storeError(err, "failed to load selection")
	}
	return selection, nil
}

// Remove deletes a cart entry.
func (s *SelectionService) Remove(ctx context.Context, id string) error {
	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	affected, err := s.repo.Delete(sctx, id)
	if err != nil {
		return storeError(err, "failed to delete selection")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "selection not found")
	}
	return nil
}
