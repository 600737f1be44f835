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
	Crawler   CrawlerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Batch     BatchConfig
	LLM       LLMConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// CrawlerConfig controls the crawl pipeline.
type CrawlerConfig struct {
	// Deadline bounds the entire redirect-following loop for the main
	// document fetch.
	Deadline time.Duration // default: 15s

	// AuditTimeout is the outer bound on a whole audit (fetch + probes +
	// extraction + scoring), applied by the handler layer.
	AuditTimeout time.Duration // default: 30s

	// ProbeTimeout bounds each robots.txt/llms.txt probe.
	ProbeTimeout time.Duration // default: 10s

	// MaxBodyBytes is the hard cap on the main document size. Documents
	// over the cap are rejected, not truncated.
	MaxBodyBytes int64 // default: 500000
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key or client IP.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per identity.
	Burst int // default: 5
}

// CacheConfig controls the audit report cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached reports.
	MaxEntries int // default: 1000

	// TTL is how long a cached report stays valid.
	TTL time.Duration // default: 1m
}

// BatchConfig controls batch audits.
type BatchConfig struct {
	// MaxURLs is the maximum number of URLs per batch.
	MaxURLs int // default: 10

	// Concurrency is the number of audits processed at once, kept small
	// so batches do not hammer target sites.
	Concurrency int // default: 3
}

// LLMConfig configures the optional insights collaborator. When APIKey is
// empty the audit runs with deterministic prose only.
type LLMConfig struct {
	APIKey  string
	Model   string // default: "gpt-4o-mini"
	BaseURL string // default: "https://api.openai.com/v1"
}

// WebhookConfig configures optional batch-completion notifications.
type WebhookConfig struct {
	URL    string
	Secret string
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
			Host: envOr("QUOTED_HOST", "0.0.0.0"),
			Port: envIntOr("QUOTED_PORT", 8080),
			Mode: envOr("QUOTED_MODE", "release"),
		},
		Crawler: CrawlerConfig{
			Deadline:     envDurationOr("QUOTED_CRAWL_DEADLINE", 15*time.Second),
			AuditTimeout: envDurationOr("QUOTED_AUDIT_TIMEOUT", 30*time.Second),
			ProbeTimeout: envDurationOr("QUOTED_PROBE_TIMEOUT", 10*time.Second),
			MaxBodyBytes: int64(envIntOr("QUOTED_MAX_BODY_BYTES", 500000)),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("QUOTED_AUTH_ENABLED", false),
			APIKeys: envSliceOr("QUOTED_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("QUOTED_RATE_RPS", 2.0),
			Burst:             envIntOr("QUOTED_RATE_BURST", 5),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("QUOTED_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("QUOTED_CACHE_TTL", time.Minute),
		},
		Batch: BatchConfig{
			MaxURLs:     envIntOr("QUOTED_BATCH_MAX_URLS", 10),
			Concurrency: envIntOr("QUOTED_BATCH_CONCURRENCY", 3),
		},
		LLM: LLMConfig{
			APIKey:  os.Getenv("QUOTED_LLM_API_KEY"),
			Model:   envOr("QUOTED_LLM_MODEL", "gpt-4o-mini"),
			BaseURL: envOr("QUOTED_LLM_BASE_URL", "https://api.openai.com/v1"),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("QUOTED_WEBHOOK_URL"),
			Secret: os.Getenv("QUOTED_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("QUOTED_LOG_LEVEL", "info"),
			Format: envOr("QUOTED_LOG_FORMAT", "json"),
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
