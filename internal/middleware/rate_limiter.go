package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"salonagenda/internal/pkg/response"
)

const (
	// limiterIdleTTL drops buckets of clients not seen for this long; by then
	// their bucket has refilled and a fresh one behaves the same.
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	log       *zap.Logger
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimiter allows perMinute requests per IP with an equal burst.
func NewRateLimiter(perMinute int, log *zap.Logger) *RateLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		log:      log,
		now:      time.Now,
	}
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= limiterSweepInterval {
		for key, v := range r.visitors {
			if now.Sub(v.lastSeen) >= limiterIdleTTL {
				delete(r.visitors, key)
			}
		}
		r.lastSweep = now
	}

	v, exists := r.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !r.allow(ip) {
			r.log.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Request.URL.Path))
			response.Abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded. Try again later.")
			return
		}
		c.Next()
	}
}
