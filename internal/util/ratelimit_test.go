package util

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowRespectsBurst(t *testing.T) {
	limiter := NewLimiter(1, 2)

	if !limiter.Allow("https://example.com/a") {
		t.Error("Expected first request within burst")
	}
	if !limiter.Allow("https://example.com/b") {
		t.Error("Expected second request within burst")
	}
	if limiter.Allow("https://example.com/c") {
		t.Error("Expected third request to exceed burst")
	}

	// Limits are per domain
	if !limiter.Allow("https://other.example/") {
		t.Error("Expected fresh budget for a different domain")
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetDomainRate("slow.example", 1, 1)

	if !limiter.Allow("https://slow.example/") {
		t.Error("Expected first request allowed")
	}
	if limiter.Allow("https://slow.example/") {
		t.Error("Expected second request blocked by custom rate")
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(1000, 1000)

	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "https://example.com/", 20*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Expected at least 20ms delay, got %v", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.WaitWithDelay(ctx, "https://example.com/", time.Second); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if limiter.Allow("://not a url") {
		t.Error("Expected invalid URL to be disallowed")
	}
}
