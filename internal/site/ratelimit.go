package site

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"
)

// RateLimiter implements a token bucket rate limiter per client IP
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	rpm     int
	now     func() time.Time
}

type tokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter creates a limiter allowing rpm requests per minute per
// client. rpm <= 0 disables limiting.
func NewRateLimiter(rpm int) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*tokenBucket),
		rpm:     rpm,
		now:     time.Now,
	}
}

// Allow checks if a request is allowed for the client
// Returns true if allowed, false if rate limited
func (r *RateLimiter) Allow(client string) bool {
	if r == nil || r.rpm <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.buckets[client]
	if !exists {
		// Allow burst of ~10 seconds worth, minimum 10 requests
		maxTokens := float64(r.rpm) / 6
		if maxTokens < 10 {
			maxTokens = 10
		}
		bucket = &tokenBucket{
			tokens:     maxTokens,
			maxTokens:  maxTokens,
			refillRate: float64(r.rpm) / 60.0,
			lastRefill: now,
		}
		r.buckets[client] = bucket
	}

	// Refill tokens based on time elapsed
	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens += elapsed * bucket.refillRate
	if bucket.tokens > bucket.maxTokens {
		bucket.tokens = bucket.maxTokens
	}
	bucket.lastRefill = now

	// Try to consume a token
	if bucket.tokens >= 1 {
		bucket.tokens--
		return true
	}

	return false
}

// Sweep drops buckets idle for longer than maxIdle and returns how many
// remain. A bucket idle that long has refilled completely anyway.
func (r *RateLimiter) Sweep(maxIdle time.Duration) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	for k, b := range r.buckets {
		if b.lastRefill.Before(cutoff) {
			delete(r.buckets, k)
		}
	}
	return len(r.buckets)
}

// clientResolver names the client a request is counted against.
type clientResolver struct {
	trusted []netip.Prefix
}

func (c clientResolver) trusts(addr string) bool {
	a, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range c.trusted {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// clientIP returns the direct peer's address. Only when that peer is a
// trusted proxy are X-Forwarded-For (nearest untrusted hop) and then
// X-Real-IP consulted.
func (c clientResolver) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !c.trusts(host) {
		return host
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if _, err := netip.ParseAddr(hop); err != nil {
				break
			}
			if !c.trusts(hop) {
				return hop
			}
		}
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		if _, err := netip.ParseAddr(real); err == nil {
			return real
		}
	}
	return host
}
