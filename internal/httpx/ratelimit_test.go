package httpx

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPLimiter_PerClientBudget(t *testing.T) {
	l := NewIPLimiter(1, 2, nil)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestIPLimiter_LimitReturns429(t *testing.T) {
	l := NewIPLimiter(1, 1, nil)
	h := l.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/inquiries", nil)
		req.RemoteAddr = "192.0.2.7:5123"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusCreated, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestIPLimiter_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	l := NewIPLimiter(1, 1, nil)
	h := l.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	accepted := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/inquiries", nil)
		req.RemoteAddr = "192.0.2.7:5123"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusCreated {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestIPLimiter_HonoursForwardedForFromTrustedProxy(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	l := NewIPLimiter(1, 1, trusted)
	h := l.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(fwd string) int {
		req := httptest.NewRequest(http.MethodPost, "/inquiries", nil)
		req.RemoteAddr = "10.0.0.2:443"
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusCreated, send("198.51.100.1"))
	assert.Equal(t, http.StatusCreated, send("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
	// a spoofed left-most hop does not escape the bucket of the real client
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.50, 198.51.100.2"))
}

func TestIPLimiter_SweepsIdleBucketsPeriodically(t *testing.T) {
	l := NewIPLimiter(1, 1, nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	now = now.Add(5 * time.Minute)
	assert.True(t, l.Allow("10.0.0.2"))
	assert.Len(t, l.clients, 2)

	// idle buckets survive until the next sweep is due
	now = now.Add(6 * time.Minute)
	l.lastSweep = now.Add(-time.Minute)
	assert.True(t, l.Allow("10.0.0.3"))
	assert.Len(t, l.clients, 3)

	now = now.Add(11 * time.Minute)
	assert.True(t, l.Allow("10.0.0.4"))
	assert.Len(t, l.clients, 1)
}
