// file: middlewares/rate_limiter.go
package middlewares

import (
	"sync"
	"time"

	"MYR/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	perMin   int
	idle     time.Duration
	now      func() time.Time
}

func NewRateLimiter(perMin int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		perMin:   perMin,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

func (s *RateLimiter) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.limiters[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.limiters[ip] = e
	}
	e.lastSeen = now

	// Drop buckets of clients that went quiet.
	if len(s.limiters) > 1024 {
		for k, v := range s.limiters {
			if now.Sub(v.lastSeen) > s.idle {
				delete(s.limiters, k)
			}
		}
	}
	return e.limiter
}

// Allow reports whether ip may make another request now.
func (s *RateLimiter) Allow(ip string) bool {
	return s.get(ip).Allow()
}

// Middleware is a no-op when the limit is not positive.
func (s *RateLimiter) Middleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.perMin <= 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if !s.Allow(ip) {
			log.Warn("rate limit exceeded", zap.String("ip", ip))
			utils.Abort(c, utils.CodeRateLimited, "Rate limit exceeded, try again later")
			return
		}
		c.Next()
	}
}
