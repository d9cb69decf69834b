package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(3, time.Minute)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("1.2.3.4") {
		t.Error("fourth request in the window should be rejected")
	}

	// Other keys have their own quota
	if !limiter.Allow("5.6.7.8") {
		t.Error("a different key should not be affected")
	}

	// The window expires and the counter resets
	now = now.Add(61 * time.Second)
	if !limiter.Allow("1.2.3.4") {
		t.Error("request after the window should be allowed")
	}
}

func TestLimiterBoundary(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(1, time.Minute)
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("k") {
		t.Fatal("first request should pass")
	}

	// Exactly at the window edge the old window still applies
	now = now.Add(time.Minute)
	if limiter.Allow("k") {
		t.Error("request at exactly the window size should still be limited")
	}

	now = now.Add(time.Nanosecond)
	if !limiter.Allow("k") {
		t.Error("request just past the window should pass")
	}
}
