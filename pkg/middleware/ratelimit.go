package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"datenight/internal/metrics"
	"datenight/pkg/utils"
)

// RateLimitMiddleware applies a token bucket per client IP. Idle buckets expire after
// ten minutes.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiters := cache.New(10*time.Minute, 20*time.Minute)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		var limiter *rate.Limiter
		if v, ok := limiters.Get(ip); ok {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			// Add keeps the first limiter when two requests race.
			if err := limiters.Add(ip, limiter, cache.DefaultExpiration); err != nil {
				if v, ok := limiters.Get(ip); ok {
					limiter = v.(*rate.Limiter)
				}
			}
		}
		limiters.SetDefault(ip, limiter)

		if !limiter.Allow() {
			metrics.HTTPRateLimited.Inc()
			c.Header("Retry-After", "1")
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
