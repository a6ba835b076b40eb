package assistant

import (
	"testing"
	"time"
)

func TestRateLimiterAllows(t *testing.T) {
	r := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !r.Allow("s1") {
			t.Fatalf("call %d denied below the limit", i)
		}
	}
	if r.Allow("s1") {
		t.Error("call allowed above the limit")
	}
	if r.Remaining("s1") != 0 {
		t.Errorf("Remaining = %d, want 0", r.Remaining("s1"))
	}
}

func TestRateLimiterPerSession(t *testing.T) {
	r := NewRateLimiter(1, time.Minute)
	if !r.Allow("s1") {
		t.Fatal("first s1 call denied")
	}
	if !r.Allow("s2") {
		t.Error("s2 should have its own quota")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	r := NewRateLimiter(1, 10*time.Millisecond)
	if !r.Allow("s1") {
		t.Fatal("first call denied")
	}
	if r.Allow("s1") {
		t.Fatal("second call allowed within the window")
	}
	time.Sleep(20 * time.Millisecond)
	if !r.Allow("s1") {
		t.Error("call denied after the window expired")
	}
}

func TestRateLimiterDefaults(t *testing.T) {
	r := NewRateLimiter(0, 0)
	if r.Remaining("s1") != DefaultRateLimit {
		t.Errorf("Remaining = %d, want %d", r.Remaining("s1"), DefaultRateLimit)
	}
}
