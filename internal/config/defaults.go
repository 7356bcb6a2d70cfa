package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Search defaults, used when the config file and environment leave a value unset.
const (
	// DefaultEndpoint is the GitHub user search API
	DefaultEndpoint = "https://api.github.com/search/users"
	// DefaultPerPage is the number of users requested per lookup
	DefaultPerPage = 20
	// DefaultDebounceMS is the quiet period in milliseconds before a lookup starts
	DefaultDebounceMS = 400
	// DefaultMinQueryLength is the shortest trimmed query that triggers a lookup
	DefaultMinQueryLength = 2
)

// validLevels is the set of recognized log levels.
var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Search: SearchSettings{
			Endpoint:          DefaultEndpoint,
			PerPage:           DefaultPerPage,
			DebounceMS:        DefaultDebounceMS,
			MinQueryLength:    DefaultMinQueryLength,
			TimeoutSeconds:    15,
			RequestsPerMinute: 10, // unauthenticated search API quota
			Burst:             3,
		},
		Cache: CacheSettings{
			Enabled:    true,
			Size:       128,
			TTLSeconds: 300,
		},
		UI: UISettings{
			AltScreen: true,
			Mouse:     true,
		},
		Log: LogSettings{
			File:  defaultLogFile(),
			Level: "info",
		},
	}
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "lookout.log"
	}
	return filepath.Join(dir, "lookout", "lookout.log")
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	s := c.Search
	if s.Endpoint == "" {
		return fmt.Errorf("search.endpoint is required")
	}
	if s.PerPage <= 0 || s.PerPage > 100 {
		return fmt.Errorf("search.per_page must be between 1 and 100, got %d", s.PerPage)
	}
	if s.DebounceMS <= 0 {
		return fmt.Errorf("search.debounce_ms must be positive, got %d", s.DebounceMS)
	}
	if s.MinQueryLength <= 0 {
		return fmt.Errorf("search.min_query_length must be positive, got %d", s.MinQueryLength)
	}
	if s.TimeoutSeconds <= 0 {
		return fmt.Errorf("search.timeout_seconds must be positive, got %d", s.TimeoutSeconds)
	}
	if s.RequestsPerMinute < 0 || s.Burst < 0 {
		return fmt.Errorf("search.requests_per_minute and search.burst must be non-negative")
	}
	if c.Cache.Enabled && (c.Cache.Size <= 0 || c.Cache.TTLSeconds <= 0) {
		return fmt.Errorf("cache.size and cache.ttl_seconds must be positive when the cache is enabled")
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Debounce returns the quiescence window as a duration
func (s SearchSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// Timeout returns the per-request timeout as a duration
func (s SearchSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// TTL returns the cache entry lifetime as a duration
func (c CacheSettings) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}
