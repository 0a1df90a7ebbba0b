package service

import (
	"testing"
	"time"
)

func TestPublishRateLimiterAllowsUpToMax(t *testing.T) {
	limiter := NewPublishRateLimiter(time.Minute, 2)

	if !limiter.Allow("0xabc") {
		t.Fatalf("first call should be allowed")
	}
	if !limiter.Allow("0xabc") {
		t.Fatalf("second call should be allowed")
	}
	if limiter.Allow("0xabc") {
		t.Fatalf("third call within window should be denied")
	}
}

func TestPublishRateLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewPublishRateLimiter(time.Minute, 1)

	if !limiter.Allow("0xaaa") {
		t.Fatalf("first wallet should be allowed")
	}
	if !limiter.Allow("0xbbb") {
		t.Fatalf("second wallet should not share the first wallet's budget")
	}
}

func TestPublishRateLimiterWindowExpires(t *testing.T) {
	limiter := NewPublishRateLimiter(10*time.Millisecond, 1)

	if !limiter.Allow("0xabc") {
		t.Fatalf("first call should be allowed")
	}
	if limiter.Allow("0xabc") {
		t.Fatalf("second call within window should be denied")
	}

	time.Sleep(20 * time.Millisecond)
	if !limiter.Allow("0xabc") {
		t.Fatalf("call after window should be allowed again")
	}
}
