package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// lookupEnv returns the trimmed value of key; blank counts as unset.
func lookupEnv(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

func envOrDefault(key, defaultValue string) string {
	if val, ok := lookupEnv(key); ok {
		return val
	}
	return defaultValue
}

// positiveEnvOrDefault parses key with parse and falls back on unset,
// malformed or non-positive values.
func positiveEnvOrDefault[T int | int64 | time.Duration](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	val, err := parse(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return positiveEnvOrDefault(key, defaultValue, time.ParseDuration)
}

func intEnvOrDefault(key string, defaultValue int) int {
	return positiveEnvOrDefault(key, defaultValue, strconv.Atoi)
}

func int64EnvOrDefault(key string, defaultValue int64) int64 {
	return positiveEnvOrDefault(key, defaultValue, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return defaultValue
}
