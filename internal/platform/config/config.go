// Package config loads application configuration from environment variables.
// All variables use the LEARN_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Cache          CacheConfig
	Notices        NoticeConfig
	Log            LogConfig
	CurriculumPath string
}

// CacheConfig holds Dragonfly/Redis connection settings.
type CacheConfig struct {
	URL    string
	Prefix string
}

// NoticeConfig controls the transient acknowledgements shown after a move.
type NoticeConfig struct {
	Backend      string // "memory" or "redis"
	HighlightTTL time.Duration
	ErrorTTL     time.Duration
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// Load reads configuration from environment variables with LEARN_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Cache: CacheConfig{
			URL:    envStr("LEARN_CACHE_URL", "redis://localhost:6379"),
			Prefix: envStr("LEARN_CACHE_PREFIX", "authoring"),
		},
		Notices: NoticeConfig{
			Backend:      envStr("LEARN_NOTICE_BACKEND", "memory"),
			HighlightTTL: envDuration("LEARN_NOTICE_HIGHLIGHT_TTL", 2*time.Second),
			ErrorTTL:     envDuration("LEARN_NOTICE_ERROR_TTL", 3*time.Second),
		},
		Log: LogConfig{
			Level:     envStr("LEARN_LOG_LEVEL", "info"),
			Format:    envStr("LEARN_LOG_FORMAT", "json"),
			AddSource: envBool("LEARN_LOG_SOURCE", false),
		},
		CurriculumPath: envStr("LEARN_CURRICULUM_PATH", "./seed"),
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.CurriculumPath == "" {
		return fmt.Errorf("LEARN_CURRICULUM_PATH is required")
	}

	if c.Notices.Backend != "memory" && c.Notices.Backend != "redis" {
		return fmt.Errorf("LEARN_NOTICE_BACKEND must be 'memory' or 'redis', got %q", c.Notices.Backend)
	}

	if c.Notices.HighlightTTL <= 0 {
		return fmt.Errorf("LEARN_NOTICE_HIGHLIGHT_TTL must be positive, got %s", c.Notices.HighlightTTL)
	}
	if c.Notices.ErrorTTL <= 0 {
		return fmt.Errorf("LEARN_NOTICE_ERROR_TTL must be positive, got %s", c.Notices.ErrorTTL)
	}

	if c.Notices.Backend == "redis" && c.Cache.URL == "" {
		return fmt.Errorf("LEARN_CACHE_URL is required for the redis notice backend")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("LEARN_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}

// envDuration accepts Go durations ("1500ms") or plain milliseconds ("1500").
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms := envInt(key, -1); ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
