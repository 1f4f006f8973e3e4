package service

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/megapixel-app/megapixel-api/internal/models"
	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
)

func newAuthService(secret string) *AuthService {
	return NewAuthService(validator.New(), zap.NewNop(), AuthConfig{
		Secret: secret,
		Expiry: time.Hour,
		Issuer: "megapixel",
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newAuthService("secret")

	res, err := svc.IssueToken(models.TokenRequest{Email: "user@example.com", Name: "User"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "User", claims.Name)
	assert.Equal(t, "user@example.com", claims.Subject)
	assert.Equal(t, "megapixel", claims.Issuer)
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	svc := newAuthService("secret")

	_, err := svc.IssueToken(models.TokenRequest{Name: "no email"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.IssueToken(models.TokenRequest{Email: "not-an-email"})
	require.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := newAuthService("secret-a")
	verifier := newAuthService("secret-b")

	res, err := issuer.IssueToken(models.TokenRequest{Email: "user@example.com"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(res.Token)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
	assert.Equal(t, "unauthorized access", appErr.Message)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewAuthService(validator.New(), zap.NewNop(), AuthConfig{Secret: "secret", Expiry: -time.Minute})

	// Expiry below zero falls back to the default, so sign an expired
	// token by hand instead.
	claims := &models.JWTClaims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsUnsignedAlgorithm(t *testing.T) {
	svc := newAuthService("secret")

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &models.JWTClaims{Email: "user@example.com"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.Error(t, err)
}
