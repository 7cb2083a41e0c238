package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminTokenHeader carries the shared admin token on mutating requests.
const AdminTokenHeader = "X-Admin-Token"

// AdminAuth returns a middleware that gates admin routes behind a shared
// token. An empty configured token disables all admin routes rather than
// leaving them open.
// Parameters:
//   - token: configured shared secret.
// Returns:
//   - gin.HandlerFunc: middleware handler.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "admin access is not configured",
			})
			return
		}
		supplied := c.GetHeader(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid admin token",
			})
			return
		}
		c.Next()
	}
}
