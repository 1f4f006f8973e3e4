package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
)

// ErrorBody is the legacy error contract the front end matches on.
type ErrorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// JSON sends a success response. Payloads go out bare, without an
// envelope, because the consuming front end predates this service.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response in the legacy shape at the typed status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, ErrorBody{Error: true, Message: appErr.Message})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
