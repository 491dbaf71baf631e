package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type ipLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     r,
		burst:    burst,
		idleTTL:  limiterIdleTTL,
		now:      time.Now,
	}
}

func (ipl *ipLimiter) get(ip string) *rate.Limiter {
	ipl.mu.Lock()
	defer ipl.mu.Unlock()

	now := ipl.now()
	if now.Sub(ipl.lastSweep) >= limiterSweepInterval {
		ipl.sweep(now)
	}

	cl, ok := ipl.limiters[ip]
	if !ok {
		cl = &clientLimiter{lim: rate.NewLimiter(ipl.rate, ipl.burst)}
		ipl.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.lim
}

// sweep drops clients idle past the TTL. A dropped client's bucket would
// have refilled by then, so a fresh limiter behaves the same. Callers hold mu.
func (ipl *ipLimiter) sweep(now time.Time) {
	for ip, cl := range ipl.limiters {
		if now.Sub(cl.lastSeen) > ipl.idleTTL {
			delete(ipl.limiters, ip)
		}
	}
	ipl.lastSweep = now
}

func (ipl *ipLimiter) size() int {
	ipl.mu.Lock()
	defer ipl.mu.Unlock()
	return len(ipl.limiters)
}

// RateLimit allows perMinute requests per client IP, refilled evenly.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	return newIPLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute).middleware
}

func (ipl *ipLimiter) middleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ipl.get(clientIP(r)).Allow() {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
