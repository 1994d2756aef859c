package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter tracks request counts per client within a fixed window.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*windowCount
	limit   int
	window  time.Duration
}

type windowCount struct {
	count   int
	started time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*windowCount),
		limit:   limit,
		window:  window,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.evictStale(now)

	w, exists := rl.clients[key]
	if !exists || now.Sub(w.started) >= rl.window {
		rl.clients[key] = &windowCount{count: 1, started: now}
		return true
	}

	if w.count >= rl.limit {
		return false
	}

	w.count++
	return true
}

func (rl *RateLimiter) evictStale(now time.Time) {
	for key, w := range rl.clients {
		if now.Sub(w.started) >= 2*rl.window {
			delete(rl.clients, key)
		}
	}
}

// RateLimit enforces a per-client request limit on the routes it wraps.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(limit, window)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			return
		}

		c.Next()
	}
}

// AuthRateLimiter applies a stricter limit to authentication endpoints.
func AuthRateLimiter() gin.HandlerFunc {
	return RateLimit(5, time.Minute)
}
