package middleware

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rallyprotocol/rally-claim/internal/common/errors"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string         `json:"error" example:"Invalid NFT type"`
	Code      string         `json:"code" example:"INVALID_NFT_TYPE"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// RespondError sends an error JSON response.
// Errors that are not *errors.AppError become a generic 500.
func RespondError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.Internal("An unexpected error occurred")
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	c.JSON(appErr.StatusCode, ErrorResponse{
		Error:     appErr.Message,
		Code:      appErr.Code,
		RequestID: GetRequestID(c),
		Details:   appErr.Details,
	})
}

// RespondOK sends a 200 OK response with data as the body
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
