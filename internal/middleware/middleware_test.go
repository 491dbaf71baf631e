package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimitPerIP(t *testing.T) {
	h := RateLimit(2)(ok)

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000"))
}

func TestRateLimitEvictsIdleClients(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	il := newIPLimiter(rate.Every(time.Minute), 1)
	il.now = func() time.Time { return clock }

	il.get("10.0.0.1")
	il.get("10.0.0.2")
	assert.Equal(t, 2, il.size())

	clock = clock.Add(5 * time.Minute)
	il.get("10.0.0.2")
	assert.Equal(t, 2, il.size())

	// 10.0.0.1 has now been idle past the TTL; 10.0.0.2 has not.
	clock = clock.Add(limiterIdleTTL - time.Minute)
	il.get("10.0.0.3")
	assert.Equal(t, 2, il.size())
	assert.NotContains(t, il.limiters, "10.0.0.1")
	assert.Contains(t, il.limiters, "10.0.0.2")
}

func TestRateLimitEvictedClientStartsFresh(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	il := newIPLimiter(rate.Every(time.Hour), 1)
	il.now = func() time.Time { return clock }
	h := il.middleware(ok)

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = "10.0.0.1:1000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())

	clock = clock.Add(limiterIdleTTL + limiterSweepInterval)
	il.get("10.0.0.9")
	assert.NotContains(t, il.limiters, "10.0.0.1")
	assert.Equal(t, http.StatusOK, do())
}

func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "form-action 'self'")
}
