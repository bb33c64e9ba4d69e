package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// PerIP hands out one token bucket per client IP. Buckets are created on
// first sight and kept for the life of the process; the tracked set stays
// small because entries are per deployment, not per request.
type PerIP struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewPerIP(limit rate.Limit, burst int) *PerIP {
	return &PerIP{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// PerHour builds a limiter that refills n tokens over each hour, with the
// full budget available up front.
func PerHour(n int) *PerIP {
	return NewPerIP(rate.Every(time.Hour/time.Duration(n)), n)
}

// PerMinute builds a limiter that refills n tokens over each minute.
func PerMinute(n int) *PerIP {
	return NewPerIP(rate.Every(time.Minute/time.Duration(n)), n)
}

func (p *PerIP) limiter(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, ok := p.limiters[ip]
	if !ok {
		l = rate.NewLimiter(p.limit, p.burst)
		p.limiters[ip] = l
	}
	return l
}

// Allow consumes one token for ip, reporting whether the request may
// proceed.
func (p *PerIP) Allow(ip string) bool {
	return p.limiter(ip).Allow()
}

// AllowN consumes n tokens at once. Requests that fan out into several
// predictions charge their full cost up front.
func (p *PerIP) AllowN(ip string, n int) bool {
	if n < 1 {
		n = 1
	}
	// A cost above the burst would never be allowed; clamp so oversized
	// sweeps drain the whole budget instead of passing for free.
	if n > p.burst {
		n = p.burst
	}
	return p.limiter(ip).AllowN(time.Now(), n)
}

// ClientIP extracts the peer address without the port. The service sits
// behind its own listener in the reference deployment, so proxy headers
// are not consulted.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
