package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORSMiddleware handles CORS for the store portal and review frontend
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		// Support wildcard suffix matching, e.g. "http://localhost:*"
		if strings.HasSuffix(allowed, "*") {
			prefix := strings.TrimSuffix(allowed, "*")
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

const (
	// limiterIdleTimeout is how long an IP must go unseen before its
	// limiter is eligible for eviction.
	limiterIdleTimeout = 10 * time.Minute

	// limiterSweepSize is the map size that triggers an eviction sweep on
	// the next new IP.
	limiterSweepSize = 1024
)

// clientLimiter pairs a rate limiter with when its IP was last seen.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters tracks one limiter per client IP. Idle entries are swept out
// once the map grows past limiterSweepSize, so address churn cannot grow
// it without bound.
type ipLimiters struct {
	mu        sync.Mutex
	perMinute int
	clients   map[string]*clientLimiter
	now       func() time.Time
}

func newIPLimiters(perMinute int) *ipLimiters {
	return &ipLimiters{
		perMinute: perMinute,
		clients:   make(map[string]*clientLimiter),
		now:       time.Now,
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cl, ok := l.clients[ip]
	if !ok {
		if len(l.clients) >= limiterSweepSize {
			l.sweepLocked(now)
		}
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60.0), l.perMinute),
		}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// sweepLocked drops limiters for IPs not seen within the idle timeout.
// Caller holds the lock.
func (l *ipLimiters) sweepLocked(now time.Time) {
	for ip, cl := range l.clients {
		if now.Sub(cl.lastSeen) > limiterIdleTimeout {
			delete(l.clients, ip)
		}
	}
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimitMiddleware limits each client IP to perMinute requests per
// minute, with a small burst. Limiters for idle IPs are evicted so the
// per-IP map stays bounded under address churn.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	limiters := newIPLimiters(perMinute)

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// LoggerMiddleware logs requests (simple version for now)
func LoggerMiddleware() gin.HandlerFunc {
	return gin.Logger()
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.Recovery()
}
