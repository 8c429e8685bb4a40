// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/claudia-app/claudia-vault/internal/logger"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterSweepSize = 256
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client address.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func newClientLimiter(perSecond float64, burst int) *clientLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// reserve takes a token for client. When none is available it returns false
// and the delay until the next token.
func (c *clientLimiter) reserve(client string) (bool, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.limiters) >= limiterSweepSize {
		for key, entry := range c.limiters {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(c.limiters, key)
			}
		}
	}

	entry, ok := c.limiters[client]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.limiters[client] = entry
	}
	entry.lastSeen = now

	r := entry.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// withUnlockLimit throttles endpoints that check a master password.
func (h *Handler) withUnlockLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientKey(r)
		if ok, delay := h.unlockLimiter.reserve(client); !ok {
			logger.FromRequest(r).Warn().Str("client", client).Dur("retry_after", delay).Msg("unlock rate limit exceeded")

			seconds := int(delay.Seconds())
			if delay > time.Duration(seconds)*time.Second {
				seconds++
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			writeErrorMessage(w, "too many attempts", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
