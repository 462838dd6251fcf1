package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/baharkarakas/cat-tracker/internal/api/httpx"
)

type bucket struct {
	tokens float64
	last   time.Time
}

// idleTTL is how long a client may stay silent before its bucket is dropped.
// A bucket idle that long has refilled to burst, so dropping it changes nothing.
const idleTTL = 5 * time.Minute

// limiter is a token bucket per client address.
type limiter struct {
	mu        sync.Mutex
	rate      float64
	burst     float64
	clients   map[string]*bucket
	now       func() time.Time
	lastSweep time.Time
}

// sweep drops idle buckets at most once per idleTTL. Callers hold mu.
func (l *limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < idleTTL {
		return
	}
	for key, b := range l.clients {
		if now.Sub(b.last) >= idleTTL {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

func (l *limiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.sweep(now)
	b, ok := l.clients[key]
	if !ok {
		b = &bucket{tokens: l.burst, last: now}
		l.clients[key] = b
	}
	b.tokens = min(l.burst, b.tokens+now.Sub(b.last).Seconds()*l.rate)
	b.last = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit allows rps requests per second per client, bursting to rps.
// rps <= 0 disables limiting.
func RateLimit(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := &limiter{
		rate:      float64(rps),
		burst:     float64(rps),
		clients:   make(map[string]*bucket),
		now:       time.Now,
		lastSweep: time.Now(),
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientKey(r)) {
				httpx.WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
