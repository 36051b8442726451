package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/game-library-service/internal/cache"
	"github.com/preston-bernstein/game-library-service/internal/config"
	"github.com/preston-bernstein/game-library-service/internal/logging"
	"github.com/preston-bernstein/game-library-service/internal/metrics"
	"github.com/preston-bernstein/game-library-service/internal/store"
	"github.com/preston-bernstein/game-library-service/internal/uploads"
)

const (
	cachePrefix      = "game-library:"
	cachePingTimeout = 2 * time.Second
)

// OpenStore connects the catalog store described by cfg, retrying while the
// database comes up.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.Backend, error) {
	pool := store.PoolConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	backend, err := store.ConnectWithRetry(ctx, cfg.URL, pool, store.RetryConfig{
		Attempts: cfg.ConnectAttempts,
		Backoff:  cfg.ConnectBackoff,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	return backend, nil
}

// OpenImages opens the upload bucket described by cfg.
func OpenImages(ctx context.Context, cfg config.UploadsConfig, recorder *metrics.Recorder) (*uploads.Images, error) {
	bucket, err := uploads.OpenBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, err
	}
	return uploads.New(bucket, cfg.MaxBytes, uploads.WithMetrics(recorder)), nil
}

// OpenCache selects Redis when configured and reachable, the in-process
// cache when enabled, and no caching otherwise. A Redis failure degrades to
// the next option.
func OpenCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) cache.Cache {
	if cfg.RedisURL != "" {
		r, err := cache.NewRedis(cfg.RedisURL, cachePrefix)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, cachePingTimeout)
			err = r.Ping(pingCtx)
			cancel()
			if err == nil {
				logging.Info(logger, "cache ready", slog.String(logging.FieldCache, "redis"))
				return r
			}
			_ = r.Close()
		}
		logging.Warn(logger, "redis unavailable, falling back", logging.FieldError, err)
	}
	if cfg.Enabled {
		logging.Info(logger, "cache ready", slog.String(logging.FieldCache, "memory"))
		return cache.NewMemory(time.Now)
	}
	return cache.Nop{}
}
