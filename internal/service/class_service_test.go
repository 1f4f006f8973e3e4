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

type mockClassRepo struct {
	approved        []models.Class
	all             []models.Class
	byID            *models.Class
	byIDLater       *models.Class
	findCalls       int
	findErr         error
	createErr       error
	createdClass    *models.Class
	statusAffected  int64
	statusErr       error
	lastStatus      models.ClassStatus
	lastClear       bool
	feedbackRows    int64
	decrementRows   int64
	decrementErr    error
	decrementCalled int
}

func (m *mockClassRepo) ListApproved(ctx context.Context) ([]models.Class, error) {
	return m.approved, nil
}

func (m *mockClassRepo) ListAll(ctx context.Context) ([]models.Class, error) {
	return m.all, nil
}

func (m *mockClassRepo) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	return m.all, nil
}

func (m *mockClassRepo) FindByID(ctx context.Context, id string) (*models.Class, error) {
	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.findCalls > 1 && m.byIDLater != nil {
		return m.byIDLater, nil
	}
	return m.byID, nil
}

func (m *mockClassRepo) Create(ctx context.Context, class *models.Class) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.createdClass = class
	return nil
}

func (m *mockClassRepo) UpdateStatus(ctx context.Context, id string, status models.ClassStatus, clearFeedback bool) (int64, error) {
	if m.statusErr != nil {
		return 0, m.statusErr
	}
	m.lastStatus = status
	m.lastClear = clearFeedback
	return m.statusAffected, nil
}

func (m *mockClassRepo) SetFeedback(ctx context.Context, id, feedback string) (int64, error) {
	return m.feedbackRows, nil
}

func (m *mockClassRepo) DecrementSeats(ctx context.Context, id string) (int64, error) {
	m.decrementCalled++
	if m.decrementErr != nil {
		return 0, m.decrementErr
	}
	return m.decrementRows, nil
}

type mockClassCache struct {
	store       map[string][]models.Class
	getErr      error
	sets        int
	invalidated []string
}

func (m *mockClassCache) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	cached, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*dest.(*[]models.Class) = cached
	return nil
}

func (m *mockClassCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.store == nil {
		m.store = make(map[string][]models.Class)
	}
	m.store[key] = value.([]models.Class)
	m.sets++
	return nil
}

func (m *mockClassCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	m.store = nil
	return nil
}

func newClassService(repo *mockClassRepo, cache *mockClassCache) *ClassService {
	var c classCache
	if cache != nil {
		c = cache
	}
	return NewClassService(repo, c, NewMetricsService(), validator.New(), zap.NewNop(), time.Second, time.Minute, "test")
}

func TestClassListApprovedPopulatesCache(t *testing.T) {
	repo := &mockClassRepo{approved: []models.Class{{ID: "c1", Status: models.ClassStatusApproved}}}
	cache := &mockClassCache{}
	svc := newClassService(repo, cache)

	classes, err := svc.ListApproved(context.Background())
	require.NoError(t, err)
	assert.Len(t, classes, 1)
	assert.Equal(t, 1, cache.sets)

	// Second read is served from the cache.
	repo.approved = nil
	classes, err = svc.ListApproved(context.Background())
	require.NoError(t, err)
	assert.Len(t, classes, 1)
	assert.Equal(t, 1, cache.sets)
}

func TestClassSubmitForcesPending(t *testing.T) {
	repo := &mockClassRepo{}
	cache := &mockClassCache{}
	svc := newClassService(repo, cache)

	class, err := svc.Submit(context.Background(), SubmitClassRequest{
		Title:           "Portrait Basics",
		InstructorName:  "Ana",
		InstructorEmail: "ana@example.com",
		AvailableSeats:  10,
		Price:           49.99,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusPending, class.Status)
	assert.NotEmpty(t, cache.invalidated)
}

func TestClassSubmitRequiresInstructorEmail(t *testing.T) {
	svc := newClassService(&mockClassRepo{}, nil)

	_, err := svc.Submit(context.Background(), SubmitClassRequest{Title: "x", InstructorName: "Ana"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestClassReviewApprovalClearsFeedback(t *testing.T) {
	feedback := "needs a syllabus"
	repo := &mockClassRepo{
		byID:           &models.Class{ID: "c1", Status: models.ClassStatusPending, Feedback: &feedback},
		statusAffected: 1,
	}
	cache := &mockClassCache{}
	svc := newClassService(repo, cache)

	class, err := svc.Review(context.Background(), "c1", ReviewClassRequest{NewStatus: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusApproved, class.Status)
	assert.Nil(t, class.Feedback)
	assert.True(t, repo.lastClear)
	assert.NotEmpty(t, cache.invalidated)
}

func TestClassReviewDenialKeepsFeedback(t *testing.T) {
	feedback := "needs a syllabus"
	repo := &mockClassRepo{
		byID:           &models.Class{ID: "c1", Status: models.ClassStatusPending, Feedback: &feedback},
		statusAffected: 1,
	}
	svc := newClassService(repo, nil)

	class, err := svc.Review(context.Background(), "c1", ReviewClassRequest{NewStatus: "Denied"})
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusDenied, class.Status)
	assert.NotNil(t, class.Feedback)
	assert.False(t, repo.lastClear)
}

func TestClassReviewRejectsTerminalState(t *testing.T) {
	repo := &mockClassRepo{byID: &models.Class{ID: "c1", Status: models.ClassStatusApproved}}
	svc := newClassService(repo, nil)

	_, err := svc.Review(context.Background(), "c1", ReviewClassRequest{NewStatus: "Denied"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestClassReviewLostRaceIsConflict(t *testing.T) {
	// Two reviewers read the same Pending class; the conditional write
	// lets only one through and the loser sees zero rows.
	repo := &mockClassRepo{
		byID:           &models.Class{ID: "c1", Status: models.ClassStatusPending},
		byIDLater:      &models.Class{ID: "c1", Status: models.ClassStatusApproved},
		statusAffected: 0,
	}
	svc := newClassService(repo, nil)

	_, err := svc.Review(context.Background(), "c1", ReviewClassRequest{NewStatus: "Denied"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 2, repo.findCalls)
}

func TestClassReviewRejectsUnknownStatus(t *testing.T) {
	svc := newClassService(&mockClassRepo{}, nil)

	_, err := svc.Review(context.Background(), "c1", ReviewClassRequest{NewStatus: "Published"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Review(context.Background(), "c1", ReviewClassRequest{NewStatus: "Pending"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestClassReviewMissingClass(t *testing.T) {
	repo := &mockClassRepo{findErr: sql.ErrNoRows}
	svc := newClassService(repo, nil)

	_, err := svc.Review(context.Background(), "nope", ReviewClassRequest{NewStatus: "Approved"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClassSetFeedbackMissingClass(t *testing.T) {
	repo := &mockClassRepo{feedbackRows: 0}
	svc := newClassService(repo, nil)

	err := svc.SetFeedback(context.Background(), "nope", FeedbackRequest{Feedback: "hi"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClassDecrementSeats(t *testing.T) {
	repo := &mockClassRepo{decrementRows: 1, byID: &models.Class{ID: "c1", AvailableSeats: 4}}
	cache := &mockClassCache{}
	svc := newClassService(repo, cache)

	class, err := svc.DecrementSeats(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 4, class.AvailableSeats)
	assert.NotEmpty(t, cache.invalidated)
}

func TestClassDecrementSeatsExhausted(t *testing.T) {
	// Zero rows with the class still present means the seats ran out.
	repo := &mockClassRepo{decrementRows: 0, byID: &models.Class{ID: "c1", AvailableSeats: 0}}
	svc := newClassService(repo, nil)

	_, err := svc.DecrementSeats(context.Background(), "c1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSeatsExhausted.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrSeatsExhausted.Status, appErr.Status)
}

func TestClassDecrementSeatsMissingClass(t *testing.T) {
	repo := &mockClassRepo{decrementRows: 0, findErr: sql.ErrNoRows}
	svc := newClassService(repo, nil)

	_, err := svc.DecrementSeats(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
