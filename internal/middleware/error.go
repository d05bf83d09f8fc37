// File: internal/middleware/error.go
package middleware

import (
	"net/http"

	"kudos_web/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errMethodNotAllowed = common.NewAPIError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "The method is not allowed for the requested URL.")

// ErrorHandler turns errors attached with c.Error into a JSON response when the
// handler did not write one itself.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		ginErr := c.Errors.Last()
		if apiErr, ok := common.IsAPIError(ginErr.Err); ok {
			c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
			return
		}
		logger.Error("Unhandled application error",
			zap.Error(ginErr.Err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDContextKey)),
		)
		c.AbortWithStatusJSON(common.ErrInternalServer.StatusCode, common.ErrInternalServer)
	}
}

// NotFound answers unknown routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		common.RespondWithError(c, common.ErrNotFound.WithDetails("The requested endpoint does not exist."))
	}
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		common.RespondWithError(c, errMethodNotAllowed)
	}
}
