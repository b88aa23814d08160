package api

import (
	"testing"
	"time"
)

func TestLoginThrottleWindowAndForget(t *testing.T) {
	t.Parallel()

	throttle := newLoginThrottle(2, time.Hour)
	client := "127.0.0.1"
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

	throttle.recordFailure(client, now.Add(-2*time.Hour))
	throttle.recordFailure(client, now.Add(-40*time.Minute))
	if wait := throttle.retryAfter(client, now); wait != 0 {
		t.Fatalf("expected expired failure to be pruned, got wait %s", wait)
	}

	throttle.recordFailure(client, now.Add(-10*time.Minute))
	if wait := throttle.retryAfter(client, now); wait != 20*time.Minute {
		t.Fatalf("expected 20m until the oldest failure expires, got %s", wait)
	}
	if wait := throttle.retryAfter("10.0.0.2", now); wait != 0 {
		t.Fatalf("expected other clients to be unaffected, got %s", wait)
	}

	throttle.forget(client)
	if wait := throttle.retryAfter(client, now); wait != 0 {
		t.Fatalf("expected no failures after forget, got %s", wait)
	}
}

func TestRetryAfterSecondsRoundsUp(t *testing.T) {
	t.Parallel()

	cases := map[time.Duration]string{
		1500 * time.Millisecond: "2",
		time.Millisecond:        "1",
		15 * time.Minute:        "900",
	}
	for wait, expected := range cases {
		if got := retryAfterSeconds(wait); got != expected {
			t.Fatalf("expected %q for %s, got %q", expected, wait, got)
		}
	}
}
