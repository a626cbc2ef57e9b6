package middleware

import (
	"testing"
	"time"
)

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter()

	for i := 0; i < 3; i++ {
		if !l.Allow("a", 3, 0) {
			t.Fatalf("request %d should pass within capacity", i+1)
		}
	}
	if l.Allow("a", 3, 0) {
		t.Fatalf("request above capacity should be rejected")
	}

	// independent keys
	if !l.Allow("b", 3, 0) {
		t.Fatalf("different key should have its own bucket")
	}
}

func TestLimiterRefill(t *testing.T) {
	l := NewLimiter()

	if !l.Allow("k", 1, 100) {
		t.Fatalf("first request should pass")
	}
	if l.Allow("k", 1, 100) {
		t.Fatalf("bucket should be empty")
	}

	time.Sleep(50 * time.Millisecond)
	if !l.Allow("k", 1, 100) {
		t.Fatalf("bucket should have refilled")
	}
}
