package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/megapixel-app/megapixel-api/internal/models"
	"github.com/megapixel-app/megapixel-api/internal/service"
	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
	"github.com/megapixel-app/megapixel-api/pkg/export"
	"github.com/megapixel-app/megapixel-api/pkg/response"
)

type userService interface {
	Register(ctx context.Context, req service.RegisterUserRequest) (*models.User, bool, error)
	ListAll(ctx context.Context) ([]models.User, error)
	ListInstructors(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRole(ctx context.Context, id string, req service.UpdateRoleRequest) error
	HasRole(ctx context.Context, claims *models.JWTClaims, email string, role models.Role) (bool, error)
	ExportDataset(ctx context.Context) (export.Dataset, error)
}

type UserHandler struct {
	users  userService
	logger *zap.Logger
}

func NewUserHandler(users userService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// Register godoc
// @Summary Register a user
// @Description Upserts the signed-in identity, keeping the first registration when the email is already known
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.RegisterUserRequest true "User payload"
// @Success 201 {object} models.User
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorBody
// @Router /newUser [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload"))
		return
	}

	user, created, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !created {
		response.OK(c, gin.H{"message": "user already exists"})
		return
	}

	response.Created(c, user)
}

// ListAll godoc
// @Summary List registered users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /allRegisteredUsers [get]
func (h *UserHandler) ListAll(c *gin.Context) {
	users, err := h.users.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

// Export godoc
// @Summary Export registered users
// @Description Renders the user roster as CSV or PDF
// @Tags users
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.ErrorBody
// @Router /allRegisteredUsers/export [get]
func (h *UserHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	dataset, err := h.users.ExportDataset(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	stamp := time.Now().Format("20060102")
	switch format {
	case "csv":
		out, err := export.NewCSVExporter().Render(dataset)
		if err != nil {
			h.logger.Error("csv export failed", zap.Error(err))
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=users-%s.csv", stamp))
		c.Data(http.StatusOK, "text/csv", out)
	case "pdf":
		out, err := export.NewPDFExporter().Render(dataset, "Registered Users", "")
		if err != nil {
			h.logger.Error("pdf export failed", zap.Error(err))
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=users-%s.pdf", stamp))
		c.Data(http.StatusOK, "application/pdf", out)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format)))
	}
}

// Instructors godoc
// @Summary List instructors
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /instructors [get]
func (h *UserHandler) Instructors(c *gin.Context) {
	users, err := h.users.ListInstructors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

// FindByEmail godoc
// @Summary Look up a user by email
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} models.User
// @Failure 404 {object} response.ErrorBody
// @Router /userRole/{email} [get]
func (h *UserHandler) FindByEmail(c *gin.Context) {
	user, err := h.users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body service.UpdateRoleRequest true "New role"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /users/role/{id} [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req service.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload"))
		return
	}

	if err := h.users.UpdateRole(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"updated": true})
}

// CheckAdmin godoc
// @Summary Check whether the caller is an admin
// @Description Answers false, never 403, when the path email does not match the token subject
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} map[string]bool
// @Router /users/admin/{email} [get]
func (h *UserHandler) CheckAdmin(c *gin.Context) {
	h.checkRole(c, models.RoleAdmin, "admin")
}

// CheckInstructor godoc
// @Summary Check whether the caller is an instructor
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} map[string]bool
// @Router /users/instructor/{email} [get]
func (h *UserHandler) CheckInstructor(c *gin.Context) {
	h.checkRole(c, models.RoleInstructor, "instructor")
}

// CheckStudent godoc
// @Summary Check whether the caller is a student
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} map[string]bool
// @Router /users/student/{email} [get]
func (h *UserHandler) CheckStudent(c *gin.Context) {
	h.checkRole(c, models.RoleStudent, "student")
}

func (h *UserHandler) checkRole(c *gin.Context, role models.Role, key string) {
	has, err := h.users.HasRole(c.Request.Context(), claimsFromContext(c), c.Param("email"), role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{key: has})
}
