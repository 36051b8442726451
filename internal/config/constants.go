package config

import "time"

const (
	envPort            = "PORT"
	envDatabaseURL     = "DATABASE_URL"
	envDBMaxOpen       = "DB_MAX_OPEN_CONNS"
	envDBMaxIdle       = "DB_MAX_IDLE_CONNS"
	envDBConnLifetime  = "DB_CONN_MAX_LIFETIME"
	envDBConnAttempts  = "DB_CONNECT_ATTEMPTS"
	envDBConnBackoff   = "DB_CONNECT_BACKOFF"
	envUploadsBucket   = "UPLOADS_BUCKET_URL"
	envUploadsMaxBytes = "UPLOADS_MAX_BYTES"
	envAdminPassword   = "ADMIN_DEFAULT_PASSWORD"
	envAdminBcryptCost = "ADMIN_BCRYPT_COST"
	envRedisURL        = "REDIS_URL"
	envCacheTTL        = "CACHE_TTL"
	envCacheEnabled    = "CACHE_ENABLED"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envLogFile         = "LOG_FILE"

	defaultPort        = "4000"
	defaultDatabaseURL = "file:data/games.db"
	defaultDBMaxOpen   = 20
	defaultDBMaxIdle   = 5
	defaultDBLifetime  = 60 * Duration(time.Minute)
	defaultDBAttempts  = 5
	defaultDBBackoff   = 500 * Duration(time.Millisecond)
	defaultUploadsDir  = "data/uploads"
	// 5 MiB, the largest image accepted on create.
	defaultUploadsMaxBytes = 5 << 20
	defaultAdminPassword   = "changeme"
	defaultBcryptCost      = 10
	defaultCacheTTL        = 60 * Duration(time.Second)
	defaultCacheEnabled    = true
	defaultMetricsPort     = "9090"
	defaultServiceName     = "game-library-service"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)
