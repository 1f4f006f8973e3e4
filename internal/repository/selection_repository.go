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

const selectionDetailQuery = `SELECT s.id, s.student_email, s.class_id, s.created_at,
        c.title AS class_title, c.image_url, c.instructor_name, c.price, c.available_seats
        FROM selected_classes s
        JOIN classes c ON c.id = s.class_id`

// SelectionRepository handles persistence of cart entries.
type SelectionRepository struct {
	db *sqlx.DB
}

// NewSelectionRepository constructs the repository.
func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// Create persists a new cart entry.
func (r *SelectionRepository) Create(ctx context.Context, selection *models.SelectedClass) error {
	if selection.ID == "" {
		selection.ID = uuid.NewString()
	}
	if selection.CreatedAt.IsZero() {
		selection.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO selected_classes (id, student_email, class_id, created_at)
        VALUES (:id, :student_email, :class_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, selection); err != nil {
		return fmt.Errorf("create selection: %w", err)
	}
	return nil
}

// ListByStudent returns a student's cart with class details joined in.
func (r *SelectionRepository) ListByStudent(ctx context.Context, email string) ([]models.SelectedClassDetail, error) {
	query := selectionDetailQuery + ` WHERE s.student_email = $1 ORDER BY s.created_at DESC`
	var selections []models.SelectedClassDetail
	if err := r.db.SelectContext(ctx, &selections, query, email); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return selections, nil
}

// FindByID returns one cart entry with class details.
func (r *SelectionRepository) FindByID(ctx context.Context, id string) (*models.SelectedClassDetail, error) {
	query := selectionDetailQuery + ` WHERE s.id = $1 LIMIT 1`
	var selection models.SelectedClassDetail
	if err := r.db.GetContext(ctx, &selection, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find selection by id: %w", err)
	}
	return &selection, nil
}

// Delete removes a cart entry, reporting the number of rows touched.
func (r *SelectionRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM selected_classes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete selection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete selection result: %w", err)
	}
	return affected, nil
}
