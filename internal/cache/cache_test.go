package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestNopAlwaysMisses(t *testing.T) {
	c := Nop{}
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
}

func TestMemoryGetSetDelete(t *testing.T) {
	c := NewMemory(nil)
	ctx := context.Background()

	if _, err := c.Get(ctx, "games:all"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss on empty cache, got %v", err)
	}
	if err := c.Set(ctx, "games:all", []byte(`[]`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "games:all")
	if err != nil || string(got) != "[]" {
		t.Fatalf("expected cached value, got %q %v", got, err)
	}

	got[0] = 'x'
	again, _ := c.Get(ctx, "games:all")
	if string(again) != "[]" {
		t.Fatalf("expected cache to return copies, got %q", again)
	}

	if err := c.Delete(ctx, "games:all", "games:featured"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, "games:all"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestMemoryExpiresEntries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory(func() time.Time { return now })
	ctx := context.Background()

	_ = c.Set(ctx, "short", []byte("1"), time.Second)
	_ = c.Set(ctx, "forever", []byte("2"), 0)

	now = now.Add(2 * time.Second)

	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected expired entry to miss, got %v", err)
	}
	if v, err := c.Get(ctx, "forever"); err != nil || string(v) != "2" {
		t.Fatalf("expected non-expiring entry, got %q %v", v, err)
	}
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	if _, err := NewRedis("not a url", "games:"); err == nil {
		t.Fatalf("expected parse error")
	}
}

// Runs only when a Redis server is available, e.g. REDIS_TEST_URL=redis://localhost:6379/15.
func TestRedisRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	c, err := NewRedis(url, "game-library-test:")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()
	ctx := context.Background()
	if err := c.Ping(ctx); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, err := c.Get(ctx, "k"); err != nil || string(v) != "v" {
		t.Fatalf("expected value, got %q %v", v, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}
