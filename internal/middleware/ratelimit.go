package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/growwgate/internal/domain/dto"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// RateLimiter is a fixed-window, per-IP request limiter.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter allows up to limit requests per window for each client IP.
// A limit <= 0 disables limiting.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow records one request from ip and reports whether it is within the limit.
func (r *RateLimiter) Allow(ip string) bool {
	if r.limit <= 0 {
		return true
	}
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	cl, ok := r.clients[ip]
	if !ok || now.Sub(cl.windowStart) >= r.window {
		r.clients[ip] = &client{windowStart: now, count: 1}
		r.sweep(now)
		return true
	}
	cl.count++
	return cl.count <= r.limit
}

// sweep drops clients whose window has expired. Caller holds r.mu.
func (r *RateLimiter) sweep(now time.Time) {
	for ip, cl := range r.clients {
		if now.Sub(cl.windowStart) >= r.window {
			delete(r.clients, ip)
		}
	}
}

// Middleware returns the Gin handler. Rejected requests get 429 with a
// Retry-After header.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{"message": "rate limit exceeded", ...}
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		c.Header("Retry-After", fmt.Sprintf("%d", int(r.window.Seconds())))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
	}
}
