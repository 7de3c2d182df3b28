package ratelimiter

import (
	"context"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	if got := Key("login", "10.0.0.1"); got != "ratelimit:login:10.0.0.1" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestWithoutRedisEverythingIsAllowed(t *testing.T) {
	l := New(nil)

	for i := 0; i < 5; i++ {
		allowed, retryAfter, err := l.Allow(context.Background(), "login", "10.0.0.1", 1, time.Minute)
		if err != nil || !allowed || retryAfter != 0 {
			t.Fatalf("hit %d: allowed=%v retryAfter=%v err=%v", i, allowed, retryAfter, err)
		}
	}
}
