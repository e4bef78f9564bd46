package httpx

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IPLimiter hands out one token bucket per client IP.
type IPLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	trusted   TrustedProxies
	clients   map[string]*client
	lastSweep time.Time
	now       func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPLimiter allows perMinute requests per IP with the given burst. Buckets idle
// for longer than ten minutes are dropped, at most once per idle interval.
// X-Forwarded-For is only read when the peer is one of the trusted proxies.
func NewIPLimiter(perMinute, burst int, trusted TrustedProxies) *IPLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPLimiter{
		limit:   rate.Every(time.Minute / time.Duration(max(perMinute, 1))),
		burst:   burst,
		idle:    10 * time.Minute,
		trusted: trusted,
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

// ClientIP resolves the address the budget is charged to.
func (l *IPLimiter) ClientIP(r *http.Request) string {
	return l.trusted.ClientIP(r)
}

func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.lastSweep.IsZero() {
		l.lastSweep = now
	}
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *IPLimiter) sweep(now time.Time) {
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > l.idle {
			delete(l.clients, k)
		}
	}
	l.lastSweep = now
}

// Limit rejects requests over the per-IP budget with 429.
func (l *IPLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.ClientIP(r)) {
			w.Header().Set("Retry-After", "60")
			WriteStatus(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
