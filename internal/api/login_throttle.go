package api

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

// loginThrottle counts failed sign-ins per client in a sliding window.
type loginThrottle struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	failures map[string][]time.Time
}

func newLoginThrottle(limit int, window time.Duration) *loginThrottle {
	return &loginThrottle{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

// retryAfter is zero while the client may still try, otherwise the time
// until its oldest counted failure leaves the window.
func (throttle *loginThrottle) retryAfter(client string, now time.Time) time.Duration {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	recent := throttle.recentLocked(client, now)
	if len(recent) < throttle.limit {
		return 0
	}
	return recent[0].Add(throttle.window).Sub(now)
}

func (throttle *loginThrottle) recordFailure(client string, now time.Time) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	throttle.failures[client] = append(throttle.recentLocked(client, now), now)
}

func (throttle *loginThrottle) forget(client string) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	delete(throttle.failures, client)
}

func (throttle *loginThrottle) recentLocked(client string, now time.Time) []time.Time {
	cutoff := now.Add(-throttle.window)
	kept := throttle.failures[client][:0]
	for _, at := range throttle.failures[client] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(throttle.failures, client)
		return nil
	}
	throttle.failures[client] = kept
	return kept
}

func loginClientKey(c *fiber.Ctx) string {
	if ip := strings.TrimSpace(c.IP()); ip != "" {
		return ip
	}
	return "unknown"
}

func retryAfterSeconds(wait time.Duration) string {
	seconds := int(math.Ceil(wait.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
