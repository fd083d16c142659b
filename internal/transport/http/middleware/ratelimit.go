package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter *rate.Limiter
	last    time.Time
}

// NewRateLimitPerIP caps request rate per client IP with an LRU-bounded
// limiter cache, so one abusive client cannot starve the hashing workers
// the login path depends on.
func NewRateLimitPerIP(limit, burst, cacheSize int, ttl time.Duration) gin.HandlerFunc {
	visitors, _ := lru.New[string, *visitor](cacheSize)

	go func() {
		ticker := time.NewTicker(ttl)
		for range ticker.C {
			for _, key := range visitors.Keys() {
				if v, ok := visitors.Peek(key); ok && time.Since(v.last) > ttl {
					visitors.Remove(key)
				}
			}
		}
	}()

	return func(c *gin.Context) {
		host := c.ClientIP()

		v, ok := visitors.Get(host)
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(rate.Limit(limit), burst)}
			visitors.Add(host, v)
		}
		v.last = time.Now()

		if !v.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false, "message": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
