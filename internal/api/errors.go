package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgball2608/piazza/pkg/errors"
)

func statusOf(err error) int {
	switch {
	case errors.IsValidation(err), errors.IsSelfReaction(err), errors.IsPostExpired(err):
		return http.StatusBadRequest
	case errors.IsUnauthorized(err):
		return http.StatusUnauthorized
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes {message, code}. Errors without a code are reported as internal errors
// and their text is not exposed.
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusOf(err)
	code := errors.GetCode(err)
	message := errors.GetMessage(err)

	if status == http.StatusInternalServerError {
		h.Logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		if code == "" {
			code = errors.CodeInternalError
			message = "internal server error"
		}
	}

	c.JSON(status, gin.H{"message": message, "code": code})
}
