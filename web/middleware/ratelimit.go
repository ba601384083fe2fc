package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"picturestream/logger"
	redisutil "picturestream/util/redis"
	"picturestream/web/entity"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configures the per-IP counter applied to the auth
// endpoints.
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyFunc           func(c *gin.Context) string
	Paths             []string // path prefixes the limiter applies to; empty means all
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 20,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
		Paths: []string{"/login", "/register"},
	}
}

func (config RateLimitConfig) applies(path string) bool {
	if len(config.Paths) == 0 {
		return true
	}
	for _, p := range config.Paths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RateLimitMiddleware counts requests per key in redis. It is a no-op when
// redis is not configured.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !redisutil.IsEnabled() || !config.applies(c.Request.URL.Path) {
			c.Next()
			return
		}

		key := "ratelimit:" + config.KeyFunc(c) + ":" + c.Request.URL.Path

		// INCR first so concurrent requests each see their own count and a
		// burst cannot slip past the limit together.
		newCount, err := redisutil.Incr(key)
		if err != nil {
			logger.Warning("rate limit increment failed:", err)
			c.Next()
			return
		}
		if newCount == 1 {
			redisutil.Expire(key, time.Minute)
		}

		if newCount > int64(config.RequestsPerMinute) {
			logger.Warningf("rate limit exceeded for %s on %s", config.KeyFunc(c), c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, entity.Msg{
				Success: false,
				Msg:     "Rate limit exceeded. Please try again later.",
			})
			return
		}

		remaining := config.RequestsPerMinute - int(newCount)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}
