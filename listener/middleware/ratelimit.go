package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// limiter is a token bucket shared by every request it guards.
type limiter struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	perSec   float64
	last     time.Time
	now      func() time.Time
}

func newLimiter(perSecond float64, burst int, now func() time.Time) *limiter {
	return &limiter{ //nolint:exhaustruct
		tokens:   float64(burst),
		capacity: float64(burst),
		perSec:   perSecond,
		last:     now(),
		now:      now,
	}
}

// take spends one token. When none is left it reports how long until one is.
func (l *limiter) take() (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	elapsed := max(0, now.Sub(l.last).Seconds())
	l.tokens = math.Min(l.capacity, l.tokens+elapsed*l.perSec)
	l.last = now

	if l.tokens >= 1 {
		l.tokens--

		return true, 0
	}

	return false, time.Duration((1 - l.tokens) / l.perSec * float64(time.Second))
}

// RateLimit caps the request rate of everything behind it to perSecond with
// bursts of up to burst requests. Refused requests get 429 with a
// Retry-After header and a JSON ErrorBody.
//
// A perSecond of zero or less disables the limit. A burst of zero or less
// allows one second worth of requests, at least one.
func RateLimit(perSecond float64, burst int) func(http.Handler) http.Handler {
	return rateLimitWith(perSecond, burst, time.Now)
}

func rateLimitWith(perSecond float64, burst int, now func() time.Time) func(http.Handler) http.Handler {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	if burst <= 0 {
		burst = max(1, int(math.Ceil(perSecond)))
	}

	bucket := newLimiter(perSecond, burst, now)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, wait := bucket.take()
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(max(1, int(math.Ceil(wait.Seconds())))))
				WriteError(w, http.StatusTooManyRequests, ErrorBody{
					Error:     "too many requests",
					RequestID: GetRequestID(r.Context()),
				})

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
