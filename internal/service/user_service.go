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
	"github.com/megapixel-app/megapixel-api/pkg/export"
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	UpdateRole(ctx context.Context, id string, role models.Role, updatedAt time.Time) (int64, error)
}

// RegisterUserRequest is the first-sign-in payload.
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Role     string `json:"role"`
}

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	NewRole string `json:"newRole" validate:"required"`
}

// UserService provides account use cases.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
	timeout   time.Duration
}

// NewUserService constructs UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger, timeout time.Duration) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger, timeout: timeout}
}

// Register creates an account on first sign-in. The insert is keyed by
// email; a second registration with the same email is a no-op and the
// returned boolean is false.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*models.User, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	role := models.RoleStudent
	if req.Role != "" {
		normalized, ok := models.NormalizeRole(req.Role)
		if !ok {
			return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", req.Role))
		}
		role = normalized
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     role,
	}

	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	created, err := s.repo.Create(sctx, user)
	if err != nil {
		return nil, false, storeError(err, "failed to create user")
	}
	if !created {
		return nil, false, nil
	}
	return user, true, nil
}

// ListAll returns every registered user.
func (s *UserService) ListAll(ctx context.Context) ([]models.User, error) {
	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	users, err := s.repo.List(sctx)
	if err != nil {
		return nil, storeError(err, "failed to list users")
	}
	return users, nil
}

// ListInstructors returns users holding the Instructor role.
func (s *UserService) ListInstructors(ctx context.Context) ([]models.User, error) {
	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	users, err := s.repo.ListByRole(sctx, models.RoleInstructor)
	if err != nil {
		return nil, storeError(err, "failed to list instructors")
	}
	return users, nil
}

// FindByEmail fetches one user record for the role page.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	user, err := s.repo.FindByEmail(sctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, storeError(err, "failed to load user")
	}
	return user, nil
}

// UpdateRole changes a user's role, normalizing the incoming string.
func (s *UserService) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}
	role, ok := models.NormalizeRole(req.NewRole)
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", req.NewRole))
	}

	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	affected, err := s.repo.UpdateRole(sctx, id, role, time.Now().UTC())
	if err != nil {
		return storeError(err, "failed to update role")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return nil
}

// HasRole is the self-check predicate behind /users/{role}/:email. A
// caller asking about any identity other than their own gets false, not an
// error, so the endpoint leaks nothing about other accounts.
func (s *UserService) HasRole(ctx context.Context, claims *models.JWTClaims, email string, role models.Role) (bool, error) {
	if claims == nil || claims.Email != email {
		return false, nil
	}

	sctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	user, err := s.repo.FindByEmail(sctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, storeError(err, "failed to load user")
	}
	return user.Role == role, nil
}

// ExportDataset shapes the registered-user roster for csv/pdf export.
func (s *UserService) ExportDataset(ctx context.Context) (export.Dataset, error) {
	users, err := s.ListAll(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	dataset := export.Dataset{Headers: []string{"Email", "Name", "Role", "Registered"}}
	for _, u := range users {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Email":      u.Email,
			"Name":       u.Name,
			"Role":       string(u.Role),
			"Registered": u.CreatedAt.Format("2006-01-02"),
		})
	}
	return dataset, nil
}
