package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Fetcher   FetcherConfig
	Scheduler SchedulerConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// DefaultProxy is the proxy URL for all navigation.
	DefaultProxy string
}

// FetcherConfig controls page navigation behavior.
type FetcherConfig struct {
	// PrimaryTimeout bounds the network-idle navigation attempt.
	PrimaryTimeout time.Duration // default: 60s

	// FallbackTimeout bounds the single DOM-parsed fallback attempt.
	FallbackTimeout time.Duration // default: 30s

	// SettlePeriod is how long the network must be quiet before the
	// primary wait condition is considered satisfied.
	SettlePeriod time.Duration // default: 300ms

	// Stealth enables anti-bot-detection evasions.
	Stealth bool // default: true

	// BlockedResourceTypes lists resource types to block during navigation.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string
}

// SchedulerConfig controls the periodic background scrape.
type SchedulerConfig struct {
	// Enabled toggles the background scheduler.
	Enabled bool // default: true

	// Interval is the time between scheduled runs.
	Interval time.Duration // default: 24h

	// TargetURL is the page scraped by every scheduled run.
	TargetURL string
}

// CacheConfig controls the markup snapshot cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached snapshots.
	MaxEntries int // default: 256

	// MaxAge is how long a snapshot may be reused. Zero disables the
	// cache entirely: every run fetches a fresh snapshot.
	MaxAge time.Duration // default: 0
}

// RateLimitConfig controls per-client rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per client IP.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SCOUT_HOST", "0.0.0.0"),
			Port: envIntOr("SCOUT_PORT", 8080),
			Mode: envOr("SCOUT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("SCOUT_HEADLESS", true),
			NoSandbox:    envBoolOr("SCOUT_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("SCOUT_BROWSER_BIN"),
			DefaultProxy: os.Getenv("SCOUT_PROXY"),
		},
		Fetcher: FetcherConfig{
			PrimaryTimeout:  envDurationOr("SCOUT_PRIMARY_TIMEOUT", 60*time.Second),
			FallbackTimeout: envDurationOr("SCOUT_FALLBACK_TIMEOUT", 30*time.Second),
			SettlePeriod:    envDurationOr("SCOUT_SETTLE_PERIOD", 300*time.Millisecond),
			Stealth:         envBoolOr("SCOUT_STEALTH", true),
			BlockedResourceTypes: envSliceOr("SCOUT_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
		},
		Scheduler: SchedulerConfig{
			Enabled:   envBoolOr("SCOUT_SCHEDULER_ENABLED", true),
			Interval:  envDurationOr("SCOUT_SCHEDULER_INTERVAL", 24*time.Hour),
			TargetURL: os.Getenv("SCOUT_SCHEDULER_URL"),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("SCOUT_CACHE_MAX_ENTRIES", 256),
			MaxAge:     envDurationOr("SCOUT_CACHE_MAX_AGE", 0),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SCOUT_RATE_RPS", 5.0),
			Burst:             envIntOr("SCOUT_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("SCOUT_LOG_LEVEL", "info"),
			Format: envOr("SCOUT_LOG_FORMAT", "json"),
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

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
