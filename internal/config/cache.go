package config

import "time"

// CacheConfig controls caching of the catalog listings.
type CacheConfig struct {
	Enabled  bool
	RedisURL string
	TTL      time.Duration
}

func loadCache() CacheConfig {
	return CacheConfig{
		Enabled:  boolEnvOrDefault(envCacheEnabled, defaultCacheEnabled),
		RedisURL: envOrDefault(envRedisURL, ""),
		TTL:      durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
	}
}
