package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/megapixel-app/megapixel-api/internal/models"
	"github.com/megapixel-app/megapixel-api/internal/service"
	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
	"github.com/megapixel-app/megapixel-api/pkg/response"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// IssueToken godoc
// @Summary Issue an access token
// @Description Exchanges a verified identity for a signed bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.TokenRequest true "Identity payload"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} response.ErrorBody
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid identity payload"))
		return
	}

	token, err := h.auth.IssueToken(req)
	if err != nil {
		h.logger.Error("failed to issue token", zap.String("email", req.Email), zap.Error(err))
		response.Error(c, err)
		return
	}

	response.OK(c, token)
}
