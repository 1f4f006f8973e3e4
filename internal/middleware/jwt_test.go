package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megapixel-app/megapixel-api/internal/models"
	"github.com/megapixel-app/megapixel-api/internal/service"
)

func newAuthService() *service.AuthService {
	return service.NewAuthService(nil, nil, service.AuthConfig{Secret: "test-secret", Expiry: time.Hour})
}

func newGatedRouter(auth *service.AuthService, handlerRan *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWT(auth), func(c *gin.Context) {
		*handlerRan = true
		claims, _ := c.Get(ContextUserKey)
		c.JSON(http.StatusOK, gin.H{"email": claims.(*models.JWTClaims).Email})
	})
	return r
}

func assertLegacyUnauthorized(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "unauthorized access", body["message"])
}

func TestJWTMissingHeader(t *testing.T) {
	handlerRan := false
	r := newGatedRouter(newAuthService(), &handlerRan)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assertLegacyUnauthorized(t, w)
	assert.False(t, handlerRan)
}

func TestJWTMalformedHeader(t *testing.T) {
	handlerRan := false
	r := newGatedRouter(newAuthService(), &handlerRan)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	assertLegacyUnauthorized(t, w)
	assert.False(t, handlerRan)
}

func TestJWTInvalidToken(t *testing.T) {
	handlerRan := false
	r := newGatedRouter(newAuthService(), &handlerRan)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)

	assertLegacyUnauthorized(t, w)
	assert.False(t, handlerRan)
}

func TestJWTValidToken(t *testing.T) {
	auth := newAuthService()
	res, err := auth.IssueToken(models.TokenRequest{Email: "user@example.com"})
	require.NoError(t, err)

	handlerRan := false
	r := newGatedRouter(auth, &handlerRan)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+res.Token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handlerRan)
	assert.Contains(t, w.Body.String(), "user@example.com")
}
