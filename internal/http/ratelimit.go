package http

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per client in fixed windows. A client's window
// opens on its first request and the count resets once the window elapses.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	now       func() time.Time
	clients   map[string]*windowCount
	lastSweep time.Time
}

type windowCount struct {
	count int
	start time.Time
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetIn is the time left until the client's window ends.
	ResetIn time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return newRateLimiter(limit, window, time.Now)
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     now,
		clients: make(map[string]*windowCount),
	}
}

// Allow records a request for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	wc, ok := l.clients[key]
	if !ok || now.Sub(wc.start) >= l.window {
		wc = &windowCount{start: now}
		l.clients[key] = wc
	}
	wc.count++

	d := Decision{
		Allowed: wc.count <= l.limit,
		Limit:   l.limit,
		ResetIn: wc.start.Add(l.window).Sub(now),
	}
	if d.Allowed {
		d.Remaining = l.limit - wc.count
	}
	return d
}

// sweep drops expired windows at most once per window. Callers hold mu.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, wc := range l.clients {
		if now.Sub(wc.start) >= l.window {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

// Middleware limits by client IP. onLimited, when set, is called for every
// rejected request.
func (l *RateLimiter) Middleware(onLimited func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := l.Allow(c.ClientIP())
		resetSeconds := strconv.Itoa(int(math.Ceil(d.ResetIn.Seconds())))
		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", resetSeconds)

		if !d.Allowed {
			if onLimited != nil {
				onLimited()
			}
			c.Header("Retry-After", resetSeconds)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests from this IP, please try again later.",
			})
			return
		}
		c.Next()
	}
}
