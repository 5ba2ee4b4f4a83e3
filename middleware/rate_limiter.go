package middleware

import (
	"net/http"
	"sync"
	"time"

	"spacetact/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	limiters map[string]*visitor
	perMin   int
	mu       sync.Mutex
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 100
	}
	return &rateLimiterStore{limiters: make(map[string]*visitor), perMin: perMin}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.limiters[ip]
	if !exists {
		// perMin requests per minute, with a full minute available as burst.
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.limiters[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep forgets visitors idle for longer than maxIdle.
func (s *rateLimiterStore) sweep(now time.Time, maxIdle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ip, v := range s.limiters {
		if now.Sub(v.lastSeen) > maxIdle {
			delete(s.limiters, ip)
		}
	}
}

// RateLimitMiddleware limits requests per IP address to perMin per minute.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	store := newRateLimiterStore(perMin)
	var lastSweep time.Time
	var sweepMu sync.Mutex

	return func(c *gin.Context) {
		now := time.Now()
		sweepMu.Lock()
		if now.Sub(lastSweep) > 10*time.Minute {
			lastSweep = now
			store.sweep(now, 10*time.Minute)
		}
		sweepMu.Unlock()

		ip := getClientIP(c)
		if !store.getLimiter(ip, now).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			utils.JSONError(c, http.StatusTooManyRequests, "rate_limited", "Rate limit exceeded. Try again later.", "")
			return
		}
		c.Next()
	}
}
