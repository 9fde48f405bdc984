package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	perr "taupe/internal/platform/errors"
	"taupe/internal/platform/logger"
	pnet "taupe/internal/platform/net"

	"golang.org/x/time/rate"
)

// RateLimitOptions configures a token bucket limiter
type RateLimitOptions struct {
	Rate            rate.Limit    // tokens per second
	Burst           int           // bucket size
	PerClient       bool          // one bucket per client ip instead of one shared bucket
	CleanupInterval time.Duration // idle client buckets are dropped after twice this
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter hands out token buckets and rejects requests with 429 when
// the caller's bucket is empty
type RateLimiter struct {
	opt RateLimitOptions

	mu      sync.Mutex
	buckets map[string]*clientLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

const sharedKey = "*"

// NewRateLimiter builds a limiter. Per-client limiters start a background
// cleanup loop; call Stop when done
func NewRateLimiter(opt RateLimitOptions) *RateLimiter {
	if opt.Burst <= 0 {
		opt.Burst = 1
	}
	if opt.CleanupInterval <= 0 {
		opt.CleanupInterval = 5 * time.Minute
	}
	rl := &RateLimiter{
		opt:     opt,
		buckets: make(map[string]*clientLimiter),
		stopCh:  make(chan struct{}),
	}
	if opt.PerClient {
		go rl.cleanupLoop()
	}
	return rl
}

// Stop ends the cleanup loop
func (rl *RateLimiter) Stop() { rl.stopOnce.Do(func() { close(rl.stopCh) }) }

// Middleware enforces the limit
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.key(r)
		if !rl.limiter(key).Allow() {
			logger.C(r.Context()).Warn().Str("client", key).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter(rl.opt.Rate)))
			writeWire(w, perr.TooManyRequestsf("too many requests, retry later"), pnet.RequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Len reports how many buckets are live
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

func (rl *RateLimiter) key(r *http.Request) string {
	if !rl.opt.PerClient {
		return sharedKey
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if cl, ok := rl.buckets[key]; ok {
		cl.lastAccess = time.Now()
		return cl.limiter
	}
	cl := &clientLimiter{limiter: rate.NewLimiter(rl.opt.Rate, rl.opt.Burst), lastAccess: time.Now()}
	rl.buckets[key] = cl
	return cl.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.opt.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops buckets idle for more than twice the cleanup interval
func (rl *RateLimiter) cleanup(now time.Time) {
	ttl := rl.opt.CleanupInterval * 2
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for k, cl := range rl.buckets {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.buckets, k)
		}
	}
}

// retryAfter is the seconds until one token is refilled, at least 1
func retryAfter(r rate.Limit) int {
	if r <= 0 || r == rate.Inf {
		return 1
	}
	sec := int(math.Ceil(1.0 / float64(r)))
	if sec < 1 {
		sec = 1
	}
	return sec
}
