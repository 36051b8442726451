package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server.
type Config struct {
	Port     string
	Database DatabaseConfig
	Uploads  UploadsConfig
	Admin    AdminConfig
	Cache    CacheConfig
	Metrics  MetricsConfig
	Log      LogConfig
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; real
// environment variables win over it.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() Config {
	return Config{
		Port:     envOrDefault(envPort, defaultPort),
		Database: loadDatabase(),
		Uploads:  loadUploads(),
		Admin:    loadAdmin(),
		Cache:    loadCache(),
		Metrics:  loadMetrics(),
		Log:      loadLog(),
	}
}
