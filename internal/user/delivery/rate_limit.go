package delivery

import (
	"net/http"
	"sync"
	"time"

	userdto "vidtube-backend/internal/user/dto"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window counter per identifier, enough to slow down
// credential stuffing on the login endpoint.
type RateLimiter struct {
	attempts map[string]int
	lastTry  map[string]time.Time
	mutex    sync.Mutex
	window   time.Duration
	maxTries int
}

func NewRateLimiter(window time.Duration, maxTries int) *RateLimiter {
	return &RateLimiter{
		attempts: make(map[string]int),
		lastTry:  make(map[string]time.Time),
		window:   window,
		maxTries: maxTries,
	}
}

func (rl *RateLimiter) Allow(identifier string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()

	// Sweep expired windows so the maps do not grow one entry per client
	// for the life of the process.
	for id, seen := range rl.lastTry {
		if now.Sub(seen) > rl.window {
			delete(rl.lastTry, id)
			delete(rl.attempts, id)
		}
	}

	lastTry, exists := rl.lastTry[identifier]

	// Reset counter if window has passed
	if !exists || now.Sub(lastTry) > rl.window {
		rl.attempts[identifier] = 1
		rl.lastTry[identifier] = now
		return true
	}

	if rl.attempts[identifier] >= rl.maxTries {
		return false
	}

	rl.attempts[identifier]++
	rl.lastTry[identifier] = now
	return true
}

// LoginRateLimit rejects clients that exceed the limiter, keyed by client IP.
func LoginRateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, userdto.APIResponse{
				Success: false,
				Message: "too many login attempts, try again later",
			})
			return
		}
		c.Next()
	}
}
