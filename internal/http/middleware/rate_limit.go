// README: Per-token sliding-window rate limit middleware.
package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"waypoint/internal/modules/auth"
)

// RateLimit gates each request through the token's sliding window. Runs after
// Auth, so the token is already validated.
func RateLimit(svc *auth.Service, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := CallerToken(c)
		if err := svc.CheckAndRecord(token, time.Now()); err != nil {
			if errors.Is(err, auth.ErrRateLimited) {
				log.WithFields(logrus.Fields{"path": c.Request.URL.Path}).Warn("rate limit exceeded")
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"error": "You have reached the maximum usage limit. Please try sending the message again later.",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
