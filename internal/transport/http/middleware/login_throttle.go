package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewLoginThrottle counts attempts per client IP in redis (INCR with an
// expiring window) and rejects once maxAttempts is exceeded. Credential
// checks stay terminal either way; this only slows down guessing. When
// redis is unreachable the request passes, auth itself still decides.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "throttle:" + c.FullPath() + ":" + c.ClientIP()

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn("login throttle unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(c.Request.Context(), key, window).Err(); err != nil {
				log.Warn("login throttle expire failed", zap.Error(err))
			}
		}

		if count > int64(maxAttempts) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false, "message": "too many attempts, try again later",
			})
			return
		}
		c.Next()
	}
}
