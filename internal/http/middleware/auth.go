// README: Bearer-token auth middleware backed by the session store.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"waypoint/internal/modules/auth"
)

const tokenContextKey = "session_token"

// Auth resolves the Authorization header to a known session token and stores
// it on the request context. Missing, malformed, and unknown tokens are
// rejected with 401 before any handler runs.
func Auth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := svc.ExtractToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(tokenContextKey, token)
		c.Next()
	}
}

// CallerToken returns the session token set by Auth, or "" when unset.
func CallerToken(c *gin.Context) string {
	if v, ok := c.Get(tokenContextKey); ok {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
