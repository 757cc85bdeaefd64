package middleware

import (
	"net/http"
	"sync"
	"time"

	"MeuBolso/internal/contracts"

	"github.com/gin-gonic/gin"
)

// RateLimiter limita requisições por chave (IP ou usuário) em uma janela
// deslizante. Os limites vêm de config.RateLimitConfig.
type RateLimiter struct {
	requests map[string][]time.Time
	mu       sync.RWMutex
	limit    int
	window   time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, timestamps := range rl.requests {
			var valid []time.Time
			for _, t := range timestamps {
				if now.Sub(t) < rl.window {
					valid = append(valid, t)
				}
			}
			if len(valid) == 0 {
				delete(rl.requests, key)
			} else {
				rl.requests[key] = valid
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.window)

	timestamps := rl.requests[key]
	var valid []time.Time
	for _, t := range timestamps {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}

	rl.requests[key] = append(valid, now)
	return true
}

func tooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, contracts.ErrorResponse{
		Status:  "error",
		Message: "Muitas requisições. Tente novamente em alguns minutos.",
	})
	c.Abort()
}

// RateLimit limita por IP de origem. Usado nas rotas públicas.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			tooManyRequests(c)
			return
		}

		c.Next()
	}
}

// RateLimitByUser limita pelo usuário autenticado, caindo no IP quando a
// requisição ainda não passou pelo AuthMiddleware.
func RateLimitByUser(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, exists := c.Get("user_id"); exists {
			if id, ok := userID.(string); ok {
				key = id
			}
		}

		if !limiter.Allow(key) {
			tooManyRequests(c)
			return
		}

		c.Next()
	}
}
