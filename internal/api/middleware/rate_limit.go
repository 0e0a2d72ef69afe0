package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"invitr/internal/pkg/errors"
)

// RateLimiter throttles the open greeting endpoint per client IP. Buckets
// refill continuously at the configured per-minute rate.
type RateLimiter struct {
	perMinute int
	buckets   sync.Map // map[string]*bucket
}

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 10
	}
	return &RateLimiter{perMinute: perMinute}
}

func (rl *RateLimiter) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			errors.WriteError(w, http.StatusTooManyRequests, errors.ErrCodeRateLimitExceeded, "Too many requests, slow down", nil)
			return
		}
		next(w, r)
	}
}

func (rl *RateLimiter) allow(key string) bool {
	val, _ := rl.buckets.LoadOrStore(key, &bucket{
		tokens:     float64(rl.perMinute),
		lastRefill: time.Now(),
	})
	b := val.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Minutes()
	b.tokens += elapsed * float64(rl.perMinute)
	if b.tokens > float64(rl.perMinute) {
		b.tokens = float64(rl.perMinute)
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
