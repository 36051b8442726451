package config

import "time"

// DatabaseConfig selects the catalog store and tunes its connection pool.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// ConnectAttempts and ConnectBackoff control retries while the database
	// is still starting.
	ConnectAttempts int
	ConnectBackoff  time.Duration
}

func loadDatabase() DatabaseConfig {
	return DatabaseConfig{
		URL:             envOrDefault(envDatabaseURL, defaultDatabaseURL),
		MaxOpenConns:    intEnvOrDefault(envDBMaxOpen, defaultDBMaxOpen),
		MaxIdleConns:    intEnvOrDefault(envDBMaxIdle, defaultDBMaxIdle),
		ConnMaxLifetime: durationEnvOrDefault(envDBConnLifetime, defaultDBLifetime),
		ConnectAttempts: intEnvOrDefault(envDBConnAttempts, defaultDBAttempts),
		ConnectBackoff:  durationEnvOrDefault(envDBConnBackoff, defaultDBBackoff),
	}
}
