package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"

	"lookout/internal/eventbus"
)

// EnvPrefix is the prefix of environment overrides, e.g. LOOKOUT_SEARCH_DEBOUNCE_MS
const EnvPrefix = "LOOKOUT_"

// ErrNotFound is returned by LoadFromPath when the file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Search SearchSettings `koanf:"search" toml:"search"`
	Cache  CacheSettings  `koanf:"cache" toml:"cache"`
	UI     UISettings     `koanf:"ui" toml:"ui"`
	Log    LogSettings    `koanf:"log" toml:"log"`
}

// SearchSettings controls the remote lookup and the debounce policy
type SearchSettings struct {
	Endpoint          string `koanf:"endpoint" toml:"endpoint"`
	PerPage           int    `koanf:"per_page" toml:"per_page"`
	DebounceMS        int    `koanf:"debounce_ms" toml:"debounce_ms"`
	MinQueryLength    int    `koanf:"min_query_length" toml:"min_query_length"`
	TimeoutSeconds    int    `koanf:"timeout_seconds" toml:"timeout_seconds"`
	RequestsPerMinute int    `koanf:"requests_per_minute" toml:"requests_per_minute"`
	Burst             int    `koanf:"burst" toml:"burst"`
	Token             string `koanf:"token" toml:"token,omitempty"`
}

// CacheSettings controls the in-memory lookup cache
type CacheSettings struct {
	Enabled    bool `koanf:"enabled" toml:"enabled"`
	Size       int  `koanf:"size" toml:"size"`
	TTLSeconds int  `koanf:"ttl_seconds" toml:"ttl_seconds"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	AltScreen bool `koanf:"alt_screen" toml:"alt_screen"`
	Mouse     bool `koanf:"mouse" toml:"mouse"`
}

// LogSettings controls where and how much is logged
type LogSettings struct {
	File  string `koanf:"file" toml:"file"`
	Level string `koanf:"level" toml:"level"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted at the default path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/lookout/config.toml, falling back to ~/.config
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "lookout", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file; a missing file yields defaults
func (cs *configService) Load() (*Config, error) {
	cfg, err := load(cs.filePath, false)
	if err != nil {
		return nil, err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return load(path, true)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// load layers defaults, the TOML file and LOOKOUT_* environment overrides
func load(path string, mustExist bool) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), tomlParser{}); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if os.IsNotExist(err) {
		if mustExist {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
	} else {
		return nil, fmt.Errorf("failed to access config %s: %w", path, err)
	}

	// LOOKOUT_SEARCH_DEBOUNCE_MS -> search.debounce_ms
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// tomlParser adapts go-toml to koanf's Parser interface
type tomlParser struct{}

func (tomlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (tomlParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return toml.Marshal(o)
}
