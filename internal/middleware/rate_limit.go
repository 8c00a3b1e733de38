package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/response"
)

// IPRateLimiter keeps a token bucket per client key. Entries idle past the
// eviction window are dropped so the map does not grow without bound.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	r        rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	l := &IPRateLimiter{
		limiters: make(map[string]*limiterEntry),
		r:        r,
		burst:    burst,
	}

	go l.evictLoop()

	return l
}

func (l *IPRateLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.r, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter
}

func (l *IPRateLimiter) evictLoop() {
	for range time.Tick(time.Minute) {
		l.mu.Lock()
		for key, entry := range l.limiters {
			if time.Since(entry.lastSeen) > 3*time.Minute {
				delete(l.limiters, key)
			}
		}
		l.mu.Unlock()
	}
}

// Allow reports whether the key may proceed right now.
func (l *IPRateLimiter) Allow(key string) bool {
	return l.get(key).Allow()
}

// RateLimitByIP throttles by client IP. Used on unauthenticated routes,
// login above all.
func RateLimitByIP(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			response.Error(c, 429, apperror.CodeServiceUnavailable, "too many requests", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByUser throttles by authenticated user uuid, falling back to IP
// when the route is reached without auth.
func RateLimitByUser(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(CtxUserUUID)
		if key == "" {
			key = c.ClientIP()
		}

		if !limiter.Allow(key) {
			response.Error(c, 429, apperror.CodeServiceUnavailable, "too many requests", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
