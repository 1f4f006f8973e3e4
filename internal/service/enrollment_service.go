package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/megapixel-app/megapixel-api/internal/models"
	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
	"github.com/megapixel-app/megapixel-api/pkg/export"
)

type enrollmentRepository interface {
	ListByStudent(ctx context.Context, email string) ([]models.EnrolledClass, error)
	CreateFromSelection(ctx context.Context, enrollment *models.EnrolledClass) (bool, int64, error)
}

// PaymentRequest is the post-payment payload recorded as an enrollment.
// The student identity always comes from the validated claims, never from
// the body.
type PaymentRequest struct {
	ClassID       string  `json:"classId" validate:"required"`
	TransactionID string  `json:"transactionId" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
}

// PaymentResult combines both effects of the enrollment transition.
type PaymentResult struct {
	Inserted          bool                  `json:"inserted"`
	RemovedSelections int64                 `json:"removedSelections"`
	Enrollment        *models.EnrolledClass `json:"enrollment"`
}

// EnrollmentService runs the paid-enrollment transition and reads.
type EnrollmentService struct {
	repo      enrollmentRepository
	classes   classReader
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
	timeout   time.Duration
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, classes classReader, pdf *export.PDFExporter, validate *validator.Validate, logger *zap.Logger, timeout time.Duration) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &EnrollmentService{repo: repo, classes: classes, pdf: pdf, validator: validate, logger: logger, timeout: timeout}
}

// minorUnits converts a major-unit price into the processor's minor units
// using the legacy factor of 1000.
func minorUnits(price float64) int64 {
	return int64(math.Round(price * 1000))
}

// RecordPayment persists the enrollment and clears the matching cart rows
// as one transaction. Replaying the same payment is safe: the insert is a
// no-op on the second attempt and the result reports Inserted=false.
func (s *EnrollmentService) RecordPayment(ctx context.Context, studentEmail string, req PaymentRequest) (*PaymentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	class, err := s.classes.FindByID(sctx, req.ClassID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, storeError(err, "failed to load class")
	}

	enrollment := &models.EnrolledClass{
		StudentEmail:  studentEmail,
		ClassID:       req.ClassID,
		ClassTitle:    class.Title,
		TransactionID: req.TransactionID,
		AmountMinor:   minorUnits(req.Price),
	}

	inserted, removed, err := s.repo.CreateFromSelection(sctx, enrollment)
	if err != nil {
		return nil, storeError(err, "failed to record enrollment")
	}
	if !inserted {
		s.logger.Info("duplicate payment attempt ignored",
			zap.String("student", studentEmail), zap.String("class_id", req.ClassID))
	}

	return &PaymentResult{Inserted: inserted, RemovedSelections: removed, Enrollment: enrollment}, nil
}

// ListByStudent returns a student's paid enrollments.
func (s *EnrollmentService) ListByStudent(ctx context.Context, email string) ([]models.EnrolledClass, error) {
	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	enrollments, err := s.repo.ListByStudent(sctx, email)
	if err != nil {
		return nil, storeError(err, "failed to list enrollments")
	}
	return enrollments, nil
}

// Receipt renders a student's enrollments as a PDF receipt.
func (s *EnrollmentService) Receipt(ctx context.Context, email string) ([]byte, error) {
	enrollments, err := s.ListByStudent(ctx, email)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: []string{"Class", "Transaction", "Amount", "Date"}}
	for _, e := range enrollments {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Class":       e.ClassTitle,
			"Transaction": e.TransactionID,
			"Amount":      fmt.Sprintf("%.2f USD", float64(e.AmountMinor)/1000),
			"Date":        e.CreatedAt.Format("2006-01-02"),
		})
	}

	footer := fmt.Sprintf("Generated %s for %s", time.Now().UTC().Format(time.RFC3339), email)
	payload, err := s.pdf.Render(dataset, "Enrollment receipt", footer)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt")
	}
	return payload, nil
}
