package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/megapixel-app/megapixel-api/internal/models"
	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
)

type classRepository interface {
	ListApproved(ctx context.Context) ([]models.Class, error)
	ListAll(ctx context.Context) ([]models.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	UpdateStatus(ctx context.Context, id string, status models.ClassStatus, clearFeedback bool) (int64, error)
	SetFeedback(ctx context.Context, id, feedback string) (int64, error)
	DecrementSeats(ctx context.Context, id string) (int64, error)
}

type classCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// SubmitClassRequest is an instructor's class submission. Status is not
// part of the payload: every submission starts Pending.
type SubmitClassRequest struct {
	Title           string  `json:"title" validate:"required"`
	ImageURL        string  `json:"image"`
	InstructorName  string  `json:"instructorName" validate:"required"`
	InstructorEmail string  `json:"instructorEmail" validate:"required,email"`
	AvailableSeats  int     `json:"availableSeats" validate:"gte=0"`
	Price           float64 `json:"price" validate:"gte=0"`
}

// ReviewClassRequest moves a pending class through review.
type ReviewClassRequest struct {
	NewStatus string `json:"newStatus" validate:"required"`
}

// FeedbackRequest attaches reviewer feedback to a class.
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

// ClassService orchestrates class listing, submission, review and the
// seat inventory.
type ClassService struct {
	repo      classRepository
	cache     classCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	timeout   time.Duration
	cacheTTL  time.Duration
	keyPrefix string
}

// NewClassService constructs ClassService. cache and metrics may be nil.
func NewClassService(repo classRepository, cache classCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, timeout, cacheTTL time.Duration, keyPrefix string) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if keyPrefix == "" {
		keyPrefix = "megapixel"
	}
	return &ClassService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, timeout: timeout, cacheTTL: cacheTTL, keyPrefix: keyPrefix}
}

func (s *ClassService) approvedKey() string {
	return fmt.Sprintf("%s:classes:approved", s.keyPrefix)
}

func (s *ClassService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, fmt.Sprintf("%s:classes:*", s.keyPrefix)); err != nil {
		s.logger.Warn("failed to invalidate class cache", zap.Error(err))
	}
}

// ListApproved returns approved classes ordered by remaining seats,
// serving the hot public listing from Redis when possible.
func (s *ClassService) ListApproved(ctx context.Context) ([]models.Class, error) {
	if s.cache != nil {
		start := time.Now()
		var cached []models.Class
		err := s.cache.Get(ctx, s.approvedKey(), &cached)
		s.metrics.RecordCacheOperation(err == nil, time.Since(start))
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("class cache read failed", zap.Error(err))
		}
	}

	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	classes, err := s.repo.ListApproved(sctx)
	if err != nil {
		return nil, storeError(err, "failed to list classes")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.approvedKey(), classes, s.cacheTTL); err != nil {
			s.logger.Warn("class cache write failed", zap.Error(err))
		}
	}
	return classes, nil
}

// ListAll returns every class regardless of status.
func (s *ClassService) ListAll(ctx context.Context) ([]models.Class, error) {
	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	classes, err := s.repo.ListAll(sctx)
	if err != nil {
		return nil, storeError(err, "failed to list classes")
	}
	return classes, nil
}

// ListByInstructor returns classes submitted by the given instructor.
func (s *ClassService) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	classes, err := s.repo.ListByInstructor(sctx, email)
	if err != nil {
		return nil, storeError(err, "failed to list instructor classes")
	}
	return classes, nil
}

// Submit records a new class submission in Pending state.
func (s *ClassService) Submit(ctx context.Context, req SubmitClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	class := &models.Class{
		Title:           req.Title,
		ImageURL:        req.ImageURL,
		InstructorName:  req.InstructorName,
		InstructorEmail: req.InstructorEmail,
		AvailableSeats:  req.AvailableSeats,
		Price:           req.Price,
		Status:          models.ClassStatusPending,
	}

	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	if err := s.repo.Create(sctx, class); err != nil {
		return nil, storeError(err, "failed to create class")
	}
	s.invalidate(ctx)
	return class, nil
}

// Review applies the status machine: Pending may move to Approved or
// Denied; approval clears feedback; terminal states reject any further
// transition.
func (s *ClassService) Review(ctx context.Context, id string, req ReviewClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}
	next := models.ClassStatus(req.NewStatus)
	if !next.Valid() || next == models.ClassStatusPending {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown review status %q", req.NewStatus))
	}

	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	class, err := s.repo.FindByID(sctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, storeError(err, "failed to load class")
	}
	if !class.Status.CanTransitionTo(next) {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("class is %s and cannot move to %s", class.Status, next))
	}

	clearFeedback := next == models.ClassStatusApproved
	affected, err := s.repo.UpdateStatus(sctx, id, next, clearFeedback)
	if err != nil {
		return nil, storeError(err, "failed to update class status")
	}
	if affected == 0 {
		// The conditional update lost to a concurrent review or delete.
		current, err := s.repo.FindByID(sctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
			}
			return nil, storeError(err, "failed to load class")
		}
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("class is %s and cannot move to %s", current.Status, next))
	}
	s.invalidate(ctx)

	class.Status = next
	if clearFeedback {
		class.Feedback = nil
	}
	return class, nil
}

// SetFeedback attaches reviewer feedback to a class.
func (s *ClassService) SetFeedback(ctx context.Context, id string, req FeedbackRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}

	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	affected, err := s.repo.SetFeedback(sctx, id, req.Feedback)
	if err != nil {
		return storeError(err, "failed to set feedback")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	s.invalidate(ctx)
	return nil
}

// DecrementSeats takes one seat atomically. When the conditional update
// touches nothing, a follow-up read distinguishes an unknown class from an
// exhausted one, so concurrent enrollments can never drive the count
// negative.
func (s *ClassService) DecrementSeats(ctx context.Context, id string) (*models.Class, error) {
	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	affected, err := s.repo.DecrementSeats(sctx, id)
	if err != nil {
		return nil, storeError(err, "failed to decrement seats")
	}
	if affected == 0 {
		if _, err := s.repo.FindByID(sctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
			}
			return nil, storeError(err, "failed to load class")
		}
		return nil, appErrors.ErrSeatsExhausted
	}
	s.invalidate(ctx)

	class, err := s.repo.FindByID(sctx, id)
	if err != nil {
		return nil, storeError(err, "failed to load class")
	}
	return class, nil
}
