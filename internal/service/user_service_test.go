package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/megapixel-app/megapixel-api/internal/models"
	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
)

type mockUserRepo struct {
	userByEmail    *models.User
	findByEmailErr error
	created        *models.User
	createReturns  bool
	createErr      error
	listUsers      []models.User
	listErr        error
	byRoleUsers    []models.User
	updateAffected int64
	updateErr      error
	updatedRole    models.Role
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	return m.userByEmail, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return m.userByEmail, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) (bool, error) {
	if m.createErr != nil {
		return false, m.createErr
	}
	m.created = user
	return m.createReturns, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listUsers, nil
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return m.byRoleUsers, nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id string, role models.Role, updatedAt time.Time) (int64, error) {
	if m.updateErr != nil {
		return 0, m.updateErr
	}
	m.updatedRole = role
	return m.updateAffected, nil
}

func newUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, validator.New(), zap.NewNop(), time.Second)
}

func TestUserRegisterDefaultsToStudent(t *testing.T) {
	repo := &mockUserRepo{createReturns: true}
	svc := newUserService(repo)

	user, created, err := svc.Register(context.Background(), RegisterUserRequest{Email: "new@example.com", Name: "New"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestUserRegisterExistingEmailIsNoOp(t *testing.T) {
	repo := &mockUserRepo{createReturns: false}
	svc := newUserService(repo)

	user, created, err := svc.Register(context.Background(), RegisterUserRequest{Email: "taken@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, user)
}

func TestUserRegisterNormalizesRole(t *testing.T) {
	repo := &mockUserRepo{createReturns: true}
	svc := newUserService(repo)

	user, _, err := svc.Register(context.Background(), RegisterUserRequest{Email: "i@example.com", Role: "instructor"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, user.Role)
}

func TestUserRegisterRejectsUnknownRole(t *testing.T) {
	svc := newUserService(&mockUserRepo{})

	_, _, err := svc.Register(context.Background(), RegisterUserRequest{Email: "x@example.com", Role: "superuser"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserFindByEmailNotFound(t *testing.T) {
	repo := &mockUserRepo{findByEmailErr: sql.ErrNoRows}
	svc := newUserService(repo)

	_, err := svc.FindByEmail(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUserUpdateRoleNormalizesAndMapsMissing(t *testing.T) {
	repo := &mockUserRepo{updateAffected: 1}
	svc := newUserService(repo)

	require.NoError(t, svc.UpdateRole(context.Background(), "u1", UpdateRoleRequest{NewRole: "ADMIN"}))
	assert.Equal(t, models.RoleAdmin, repo.updatedRole)

	repo.updateAffected = 0
	err := svc.UpdateRole(context.Background(), "missing", UpdateRoleRequest{NewRole: "Admin"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUserHasRoleSelfCheck(t *testing.T) {
	repo := &mockUserRepo{userByEmail: &models.User{Email: "me@example.com", Role: models.RoleAdmin}}
	svc := newUserService(repo)
	claims := &models.JWTClaims{Email: "me@example.com"}

	has, err := svc.HasRole(context.Background(), claims, "me@example.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.HasRole(context.Background(), claims, "me@example.com", models.RoleStudent)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUserHasRoleMismatchedEmailAnswersFalse(t *testing.T) {
	repo := &mockUserRepo{userByEmail: &models.User{Email: "other@example.com", Role: models.RoleAdmin}}
	svc := newUserService(repo)

	// Asking about someone else's identity is not an error, just false.
	has, err := svc.HasRole(context.Background(), &models.JWTClaims{Email: "me@example.com"}, "other@example.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, has)

	has, err = svc.HasRole(context.Background(), nil, "other@example.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUserHasRoleUnknownAccountAnswersFalse(t *testing.T) {
	repo := &mockUserRepo{findByEmailErr: sql.ErrNoRows}
	svc := newUserService(repo)

	has, err := svc.HasRole(context.Background(), &models.JWTClaims{Email: "ghost@example.com"}, "ghost@example.com", models.RoleStudent)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUserExportDataset(t *testing.T) {
	repo := &mockUserRepo{listUsers: []models.User{
		{Email: "a@example.com", Name: "A", Role: models.RoleStudent, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}}
	svc := newUserService(repo)

	dataset, err := svc.ExportDataset(context.Background())
	require.NoError(t, err)
	require.Len(t, dataset.Rows, 1)
	assert.Equal(t, "2024-03-01", dataset.Rows[0]["Registered"])
	assert.Equal(t, []string{"Email", "Name", "Role", "Registered"}, dataset.Headers)
}

func TestUserStoreTimeoutSurfacesAsGatewayTimeout(t *testing.T) {
	repo := &mockUserRepo{listErr: context.DeadlineExceeded}
	svc := newUserService(repo)

	_, err := svc.ListAll(context.Background())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrStoreTimeout.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrStoreTimeout.Status, appErr.Status)
}
