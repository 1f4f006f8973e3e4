package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/megapixel-app/megapixel-api/internal/models"
)

const classColumns = `id, title, image_url, instructor_name, instructor_email, available_seats, price, status, feedback, created_at, updated_at`

// ClassRepository handles persistence of class offerings.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs the repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// ListApproved returns approved classes, fullest-last so nearly-full
// classes surface at the top of the public listing.
func (r *ClassRepository) ListApproved(ctx context.Context) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE status = $1 ORDER BY available_seats ASC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, models.ClassStatusApproved); err != nil {
		return nil, fmt.Errorf("list approved classes: %w", err)
	}
	return classes, nil
}

// ListAll returns every class regardless of status.
func (r *ClassRepository) ListAll(ctx context.Context) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ListByInstructor returns classes submitted by the given instructor email.
func (r *ClassRepository) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE instructor_email = $1 ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, email); err != nil {
		return nil, fmt.Errorf("list instructor classes: %w", err)
	}
	return classes, nil
}

// FindByID returns a class by its ID.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE id = $1 LIMIT 1`, classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class by id: %w", err)
	}
	return &class, nil
}

// Create persists a new class submission.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now
	const query = `INSERT INTO classes (id, title, image_url, instructor_name, instructor_email, available_seats, price, status, feedback, created_at, updated_at)
        VALUES (:id, :title, :image_url, :instructor_name, :instructor_email, :available_seats, :price, :status, :feedback, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// UpdateStatus moves a pending class to the given review status. Approval
// clears any reviewer feedback in the same statement. The status condition
// makes concurrent reviews mutually exclusive: only one can touch the row,
// the rest see zero rows affected.
func (r *ClassRepository) UpdateStatus(ctx context.Context, id string, status models.ClassStatus, clearFeedback bool) (int64, error) {
	query := `UPDATE classes SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`
	if clearFeedback {
		query = `UPDATE classes SET status = $2, updated_at = $3, feedback = NULL WHERE id = $1 AND status = $4`
	}
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC(), models.ClassStatusPending)
	if err != nil {
		return 0, fmt.Errorf("update class status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update class status result: %w", err)
	}
	return affected, nil
}

// SetFeedback attaches reviewer feedback to a class.
func (r *ClassRepository) SetFeedback(ctx context.Context, id, feedback string) (int64, error) {
	const query = `UPDATE classes SET feedback = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, feedback, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("set class feedback: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("set class feedback result: %w", err)
	}
	return affected, nil
}

// DecrementSeats performs the atomic conditional seat decrement. Zero rows
// affected means either the class is unknown or no seats remain; the
// service distinguishes the two with a follow-up read.
func (r *ClassRepository) DecrementSeats(ctx context.Context, id string) (int64, error) {
	const query = `UPDATE classes SET available_seats = available_seats - 1, updated_at = $2 WHERE id = $1 AND available_seats > 0`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("decrement seats: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("decrement seats result: %w", err)
	}
	return affected, nil
}
