// File: internal/common/response.go
package common

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerKey is where the request-scoped logger lives in the gin context.
const LoggerKey = "logger"

// RespondWithError sends a JSON error response. Non-API errors are logged and
// reported as a bare 500 so internals never leak to the client.
func RespondWithError(c *gin.Context, err error) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		GetLoggerFromContext(c, zap.NewNop()).Error("Unhandled internal error being wrapped", zap.Error(err))
		apiErr = ErrInternalServer
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}

// RespondJSONError writes the {"error": "..."} body used by the upload endpoint.
func RespondJSONError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}

// RedirectTo sends a 302 to a local path.
func RedirectTo(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

// SafeRedirectPath returns target when it is a local absolute path and
// fallback otherwise. Protocol-relative and absolute URLs are rejected.
func SafeRedirectPath(target, fallback string) string {
	if target == "" || target[0] != '/' {
		return fallback
	}
	if len(target) > 1 && (target[1] == '/' || target[1] == '\\') {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return target
}
