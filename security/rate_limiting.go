package security

import (
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Window returns a fixed-window rate limit middleware keyed by the
// authenticated user when present, falling back to the client IP. The
// counter fails open when Redis is unreachable.
func (r *RateLimiter) Window(limit int, window time.Duration) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		who := e.RealIP()
		if e.Auth != nil {
			who = "user:" + e.Auth.Id
		}
		key := fmt.Sprintf("ratelimit:%s:%s", who, e.Request.URL.Path)

		count, err := r.redis.Incr(e.Request.Context(), key).Result()
		if err == nil {
			if count == 1 {
				r.redis.Expire(e.Request.Context(), key, window)
			}
			if count > int64(limit) {
				return e.JSON(429, map[string]string{
					"error": "Rate limit exceeded. Please try again later.",
				})
			}
		}

		return e.Next()
	}
}

// AntiBot screens obvious automation by user agent and per-IP request
// frequency before the booking endpoints run.
func (r *RateLimiter) AntiBot() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if r.isSuspiciousUserAgent(e.Request.Header.Get("User-Agent")) {
			return e.JSON(403, map[string]string{
				"error": "Access denied",
			})
		}

		key := fmt.Sprintf("antibot:%s", e.RealIP())
		count, err := r.redis.Incr(e.Request.Context(), key).Result()
		if err == nil {
			if count == 1 {
				r.redis.Expire(e.Request.Context(), key, time.Minute)
			}
			if count > 30 {
				return e.JSON(429, map[string]string{
					"error": "Too many requests",
				})
			}
		}

		return e.Next()
	}
}

func (r *RateLimiter) isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
