package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ajharbinger/lunai-strategist/internal/errors"
)

// respondError writes err as {"error": {...}} with the status its code maps to.
// Causes of server-side failures stay out of the body.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)

	body := gin.H{"code": apperrors.ErrCodeInternalError, "message": "Internal server error"}
	if appErr, ok := apperrors.As(err); ok {
		body = gin.H{"code": appErr.Code, "message": appErr.Message}
		if len(appErr.Problems) > 0 {
			body["problems"] = appErr.Problems
		}
	}

	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": body})
}

func badRequest(c *gin.Context, message string, cause error) {
	respondError(c, apperrors.InvalidInput(message, cause))
}
