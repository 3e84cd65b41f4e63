// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielhkuo/inct-panel/auth"
)

// limiterTTL bounds how long idle client limiters are kept
const limiterTTL = time.Hour

// LoginLimiter throttles login attempts per client. Clients are keyed by a
// salted hash of their IP so raw addresses are never held in memory.
// Forwarded headers name the client only when trustProxy is set; otherwise
// the connection's remote address does. A nil *LoginLimiter allows
// everything.
type LoginLimiter struct {
	limit      rate.Limit
	burst      int
	salt       string
	trustProxy bool

	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	lastCleanup time.Time
}

// NewLoginLimiter returns nil when perSecond is 0, meaning unlimited.
func NewLoginLimiter(perSecond float64, burst int, salt string, trustProxy bool) *LoginLimiter {
	if perSecond <= 0 {
		return nil
	}
	return &LoginLimiter{
		limit:       rate.Limit(perSecond),
		burst:       burst,
		salt:        salt,
		trustProxy:  trustProxy,
		limiters:    make(map[string]*rate.Limiter),
		lastCleanup: time.Now(),
	}
}

// Allow reports whether the client behind r may attempt a login now.
func (l *LoginLimiter) Allow(r *http.Request) bool {
	if l == nil {
		return true
	}
	ip := RemoteIP(r)
	if l.trustProxy {
		ip = GetClientIP(r)
	}
	return l.get(auth.HashIP(ip, l.salt)).Allow()
}

func (l *LoginLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Drop everything periodically to bound memory
	if time.Since(l.lastCleanup) > limiterTTL {
		l.limiters = make(map[string]*rate.Limiter)
		l.lastCleanup = time.Now()
	}

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	return limiter
}
