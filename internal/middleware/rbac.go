package middleware

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/megapixel-app/megapixel-api/internal/models"
	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
	"github.com/megapixel-app/megapixel-api/pkg/response"
)

type roleReader interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireRole composes after JWT on privileged routes. The stored user is
// looked up by the claim email and its role compared against the route's
// requirement; tokens do not carry roles, so a stale token can never grant
// a role the store has since revoked.
func RequireRole(users roleReader, required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.Error(c, appErrors.ErrForbidden)
				c.Abort()
				return
			}
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message))
			c.Abort()
			return
		}

		if user.Role != required {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
