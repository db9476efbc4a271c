package resilience

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// LimiterConfig configures the token bucket.
type LimiterConfig struct {
	// Rate is the number of tokens added per second.
	// Default: 1
	Rate float64

	// Burst is the bucket capacity.
	// Default: 5
	Burst int

	// Now returns the current time.
	// Default: time.Now
	Now func() time.Time
}

// Limiter is a token bucket. The bucket starts full.
type Limiter struct {
	config LimiterConfig

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// NewLimiter creates a new token bucket limiter.
func NewLimiter(config LimiterConfig) *Limiter {
	if config.Rate <= 0 {
		config.Rate = 1
	}
	if config.Burst <= 0 {
		config.Burst = 5
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &Limiter{
		config: config,
		tokens: float64(config.Burst),
		last:   config.Now(),
	}
}

// Allow takes a token if one is available.
func (l *Limiter) Allow() bool {
	ok, _ := l.take()
	return ok
}

// Tokens returns the number of tokens currently available.
func (l *Limiter) Tokens() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refillLocked()
	return l.tokens
}

// take reports whether a token was taken and, when none was, how long until
// the next one is due.
func (l *Limiter) take() (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refillLocked()
	if l.tokens >= 1 {
		l.tokens--
		return true, 0
	}

	missing := 1 - l.tokens
	return false, time.Duration(missing / l.config.Rate * float64(time.Second))
}

func (l *Limiter) refillLocked() {
	now := l.config.Now()
	elapsed := now.Sub(l.last)
	if elapsed <= 0 {
		return
	}
	l.last = now

	l.tokens += elapsed.Seconds() * l.config.Rate
	if l.tokens > float64(l.config.Burst) {
		l.tokens = float64(l.config.Burst)
	}
}

// Middleware returns HTTP middleware that answers 429 with a Retry-After
// header, in whole seconds, when the limiter has no token.
func Middleware(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := l.take()
			if !ok {
				retry := int(math.Ceil(wait.Seconds()))
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				http.Error(w, ErrRateLimitExceeded.Error(), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
