package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/game-library-service/internal/logging"
)

const (
	defaultConnectAttempts = 1
	defaultConnectBackoff  = 500 * time.Millisecond
)

// RetryConfig controls ConnectWithRetry. Zero values mean a single attempt.
type RetryConfig struct {
	Attempts int
	Backoff  time.Duration
	Logger   *slog.Logger
}

var connect = Connect

// ConnectWithRetry calls Connect until it succeeds, the attempts run out or
// ctx is done. The delay grows linearly with each attempt.
func ConnectWithRetry(ctx context.Context, dsn string, pool PoolConfig, rc RetryConfig, opts ...Option) (Backend, error) {
	attempts := rc.Attempts
	if attempts <= 0 {
		attempts = defaultConnectAttempts
	}
	backoff := rc.Backoff
	if backoff <= 0 {
		backoff = defaultConnectBackoff
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		b, err := connect(ctx, dsn, pool, opts...)
		if err == nil {
			return b, nil
		}
		lastErr = err
		if attempt == attempts {
			break
		}

		logging.Warn(logging.FromContext(ctx, rc.Logger), "store connect retry",
			"attempt", attempt, "max_attempts", attempts, logging.FieldError, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * backoff):
		}
	}
	return nil, lastErr
}
