package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megapixel-app/megapixel-api/internal/models"
)

type mockRoleReader struct {
	user *models.User
	err  error
}

func (m *mockRoleReader) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func newRoleRouter(reader *mockRoleReader, required models.Role, claims *models.JWTClaims, handlerRan *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only", func(c *gin.Context) {
		if claims != nil {
			c.Set(ContextUserKey, claims)
		}
		c.Next()
	}, RequireRole(reader, required), func(c *gin.Context) {
		*handlerRan = true
		c.Status(http.StatusOK)
	})
	return r
}

func assertLegacyForbidden(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "forbidden message", body["message"])
}

func TestRequireRoleGranted(t *testing.T) {
	reader := &mockRoleReader{user: &models.User{Email: "admin@example.com", Role: models.RoleAdmin}}
	handlerRan := false
	r := newRoleRouter(reader, models.RoleAdmin, &models.JWTClaims{Email: "admin@example.com"}, &handlerRan)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handlerRan)
}

func TestRequireRoleWrongRole(t *testing.T) {
	// The stored role decides, not anything baked into the token.
	reader := &mockRoleReader{user: &models.User{Email: "stu@example.com", Role: models.RoleStudent}}
	handlerRan := false
	r := newRoleRouter(reader, models.RoleAdmin, &models.JWTClaims{Email: "stu@example.com"}, &handlerRan)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

	assertLegacyForbidden(t, w)
	assert.False(t, handlerRan)
}

func TestRequireRoleUnknownAccount(t *testing.T) {
	reader := &mockRoleReader{err: sql.ErrNoRows}
	handlerRan := false
	r := newRoleRouter(reader, models.RoleAdmin, &models.JWTClaims{Email: "ghost@example.com"}, &handlerRan)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

	assertLegacyForbidden(t, w)
	assert.False(t, handlerRan)
}

func TestRequireRoleNoClaims(t *testing.T) {
	reader := &mockRoleReader{user: &models.User{Role: models.RoleAdmin}}
	handlerRan := false
	r := newRoleRouter(reader, models.RoleAdmin, nil, &handlerRan)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, handlerRan)
}
