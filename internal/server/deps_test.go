package server

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/game-library-service/internal/cache"
	"github.com/preston-bernstein/game-library-service/internal/config"
	"github.com/preston-bernstein/game-library-service/internal/testutil"
)

func TestOpenCacheSelection(t *testing.T) {
	ctx := context.Background()
	logger, _ := testutil.NewBufferLogger()

	if _, ok := OpenCache(ctx, config.CacheConfig{Enabled: true, TTL: time.Minute}, logger).(*cache.Memory); !ok {
		t.Fatalf("expected memory cache when enabled without redis")
	}
	if _, ok := OpenCache(ctx, config.CacheConfig{Enabled: false}, logger).(cache.Nop); !ok {
		t.Fatalf("expected nop cache when disabled")
	}
}

func TestOpenCacheFallsBackWhenRedisUnavailable(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	ctx := context.Background()

	c := OpenCache(ctx, config.CacheConfig{Enabled: true, RedisURL: "redis://127.0.0.1:1/0"}, logger)
	if _, ok := c.(*cache.Memory); !ok {
		t.Fatalf("expected memory fallback for unreachable redis, got %T", c)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected fallback warning")
	}

	c = OpenCache(ctx, config.CacheConfig{RedisURL: "::not a url::"}, logger)
	if _, ok := c.(cache.Nop); !ok {
		t.Fatalf("expected nop fallback for invalid redis url, got %T", c)
	}
}

func TestOpenImagesCreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/uploads"
	images, err := OpenImages(context.Background(), config.UploadsConfig{BucketURL: dir, MaxBytes: 10}, nil)
	if err != nil {
		t.Fatalf("open images: %v", err)
	}
	defer images.Close()
	if images.MaxBytes() != 10 {
		t.Fatalf("expected max bytes passthrough, got %d", images.MaxBytes())
	}
}
