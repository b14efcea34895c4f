package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type emailLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginLimiter throttles sign-in attempts per normalized email. Stale
// entries are cleaned up every 10 minutes to prevent unbounded memory
// growth; the cleanup goroutine stops when ctx is cancelled.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*emailLimiter

	attemptsPerSecond float64
	burst             int
}

// NewLoginLimiter creates a limiter allowing burst immediate attempts per
// email, refilling at attemptsPerSecond.
func NewLoginLimiter(ctx context.Context, attemptsPerSecond float64, burst int) *LoginLimiter {
	l := &LoginLimiter{
		limiters:          make(map[string]*emailLimiter),
		attemptsPerSecond: attemptsPerSecond,
		burst:             burst,
	}

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.mu.Lock()
				cutoff := time.Now().Add(-30 * time.Minute)
				for email, el := range l.limiters {
					if el.lastAccess.Before(cutoff) {
						delete(l.limiters, email)
					}
				}
				l.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	return l
}

// Allow reports whether another attempt for email may proceed now.
func (l *LoginLimiter) Allow(email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	el, ok := l.limiters[email]
	if !ok {
		el = &emailLimiter{
			limiter: rate.NewLimiter(rate.Limit(l.attemptsPerSecond), l.burst),
		}
		l.limiters[email] = el
	}
	el.lastAccess = time.Now()

	return el.limiter.Allow()
}
