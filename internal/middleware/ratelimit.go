package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

type window struct {
	count int
	until time.Time
}

// RateLimit allows limit requests per client address in every fixed window of length per.
// Rejected requests get 429 with a Retry-After header.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	return rateLimit(limit, per, time.Now)
}

func rateLimit(limit int, per time.Duration, now func() time.Time) func(http.Handler) http.Handler {
	var (
		mu        sync.Mutex
		windows   = make(map[string]*window)
		nextSweep time.Time
	)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientKey(r)
			t := now()

			mu.Lock()
			if t.After(nextSweep) {
				for key, win := range windows {
					if t.After(win.until) {
						delete(windows, key)
					}
				}
				nextSweep = t.Add(per)
			}
			win, ok := windows[ip]
			if !ok || t.After(win.until) {
				win = &window{until: t.Add(per)}
				windows[ip] = win
			}
			if win.count >= limit {
				retry := int(math.Ceil(win.until.Sub(t).Seconds()))
				mu.Unlock()
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			win.count++
			mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey returns the host part of RemoteAddr. Proxy headers are resolved earlier by
// chi's RealIP middleware, so they are not read here.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
