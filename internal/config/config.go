// Package config loads application configuration from environment
// variables with sane defaults. Only the hosting layer reads it; the
// detection library takes its settings as plain struct fields.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Detect    DetectConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// DetectConfig controls the detection engine.
type DetectConfig struct {
	// Timeout bounds each outbound probe, including /cart.js.
	Timeout time.Duration // default: 8s

	// MaxBodySize caps how much of a response body is read.
	MaxBodySize int64 // default: 10 MiB

	// UserAgent overrides the built-in browser identity when set.
	UserAgent string
}

// RateLimitConfig controls per-client-IP rate limiting on the
// detection routes.
type RateLimitConfig struct {
	RequestsPerSecond float64 // default: 2
	Burst             int     // default: 5
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SHOPDETECT_HOST", "0.0.0.0"),
			Port: envIntOr("SHOPDETECT_PORT", 8080),
			Mode: envOr("SHOPDETECT_MODE", "release"),
		},
		Detect: DetectConfig{
			Timeout:     envDurationOr("SHOPDETECT_TIMEOUT", 8*time.Second),
			MaxBodySize: envInt64Or("SHOPDETECT_MAX_BODY", 10*1024*1024),
			UserAgent:   os.Getenv("SHOPDETECT_USER_AGENT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SHOPDETECT_RATE_RPS", 2.0),
			Burst:             envIntOr("SHOPDETECT_RATE_BURST", 5),
		},
		Log: LogConfig{
			Level:  envOr("SHOPDETECT_LOG_LEVEL", "info"),
			Format: envOr("SHOPDETECT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
