package middleware

import "github.com/gin-gonic/gin"

// UserContentHeaders stops browsers from sniffing user uploads into active
// content and denies them any script or subresource.
func UserContentHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Content-Security-Policy", "default-src 'none'; sandbox")
		c.Next()
	}
}
