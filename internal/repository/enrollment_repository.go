package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/megapixel-app/megapixel-api/internal/models"
)

// EnrollmentRepository handles persistence of paid enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListByStudent returns a student's enrollments, newest first.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, email string) ([]models.EnrolledClass, error) {
	const query = `SELECT id, student_email, class_id, class_title, transaction_id, amount_minor, created_at
        FROM enrolled_classes WHERE student_email = $1 ORDER BY created_at DESC`
	var enrollments []models.EnrolledClass
	if err := r.db.SelectContext(ctx, &enrollments, query, email); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// CreateFromSelection records the enrollment and removes the matching cart
// rows inside one transaction. The unique key on (student_email, class_id)
// makes a repeated attempt a no-op insert, so either both effects land or
// neither does, and retries converge.
func (r *EnrollmentRepository) CreateFromSelection(ctx context.Context, enrollment *models.EnrolledClass) (inserted bool, removed int64, err error) {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("begin enrollment tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `INSERT INTO enrolled_classes (id, student_email, class_id, class_title, transaction_id, amount_minor, created_at)
        VALUES (:id, :student_email, :class_id, :class_title, :transaction_id, :amount_minor, :created_at)
        ON CONFLICT (student_email, class_id) DO NOTHING`
	insertRes, err := tx.NamedExecContext(ctx, insertQuery, enrollment)
	if err != nil {
		return false, 0, fmt.Errorf("insert enrollment: %w", err)
	}
	insertedRows, err := insertRes.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("insert enrollment result: %w", err)
	}

	const deleteQuery = `DELETE FROM selected_classes WHERE student_email = $1 AND class_id = $2`
	deleteRes, err := tx.ExecContext(ctx, deleteQuery, enrollment.StudentEmail, enrollment.ClassID)
	if err != nil {
		return false, 0, fmt.Errorf("delete selection: %w", err)
	}
	removed, err = deleteRes.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("delete selection result: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit enrollment tx: %w", err)
	}
	return insertedRows > 0, removed, nil
}
