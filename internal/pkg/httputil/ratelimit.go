package httputil

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits requests per client IP with a token bucket.
// Mounted on the credential endpoints (register/login) to slow down
// brute-force and enumeration attempts. Idle limiters are evicted after
// ttl to bound memory.
func RateLimitMiddleware(rps float64, burst int, ttl time.Duration) func(http.Handler) http.Handler {
	type entry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*entry)
	)

	get := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		for k, e := range clients {
			if now.Sub(e.lastSeen) > ttl {
				delete(clients, k)
			}
		}

		e, ok := clients[key]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
			clients[key] = e
		}
		e.lastSeen = now
		return e.limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !get(ip).Allow() {
				Error(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
