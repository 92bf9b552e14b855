package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodlog-backend/internal/domain/aggregates"
	"github.com/yungbote/moodlog-backend/internal/platform/apierr"
)

// StatusFor maps an aggregate error code to its HTTP status.
func StatusFor(code aggregates.ErrorCode) int {
	switch code {
	case aggregates.CodeValidation:
		return http.StatusBadRequest
	case aggregates.CodeNotFound:
		return http.StatusNotFound
	case aggregates.CodeConflict:
		return http.StatusConflict
	case aggregates.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as the JSON error envelope. Internal failures are reported
// without their cause.
func Error(c *gin.Context, err error) {
	if apiErr, ok := apierr.As(err); ok {
		RespondError(c, apiErr.Status, apiErr.Code, apiErr)
		return
	}
	code := aggregates.CodeOf(err)
	status := StatusFor(code)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		RespondError(c, status, string(aggregates.CodeInternal), errors.New("internal server error"))
		return
	}
	RespondError(c, status, string(code), errors.New(aggregates.MessageOf(err)))
}
