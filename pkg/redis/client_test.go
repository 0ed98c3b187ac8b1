package redis

import "testing"

func TestBuildKeySkipsEmptyParts(t *testing.T) {
	c := &Client{}

	if got := c.CartKey("u-1"); got != "tros:cart:u-1" {
		t.Fatalf("unexpected cart key %q", got)
	}
	if got := c.RateLimitKey("login:email:a@b.c"); got != "tros:rate_limit:login:email:a@b.c" {
		t.Fatalf("unexpected rate limit key %q", got)
	}
	if got := c.buildKey("session", "", "abc"); got != "tros:session:abc" {
		t.Fatalf("empty parts must be skipped, got %q", got)
	}
}
