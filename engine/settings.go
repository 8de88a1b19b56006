package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings tunes expression compilation and caching
type Settings struct {
	// CacheTTL is how long a compiled program stays cached, 0 keeps it forever
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// CacheSize bounds the number of cached programs, 0 means unbounded
	CacheSize int `mapstructure:"cache_size"`

	// CostLimit caps the runtime cost of a CEL program, 0 disables the limit
	CostLimit uint64 `mapstructure:"cost_limit"`
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	cache := DefaultCacheConfig()
	return Settings{
		CacheTTL:  cache.TTL,
		CacheSize: cache.MaxEntries,
		// Cost limit of 1,000,000 prevents resource exhaustion from complex expressions
		CostLimit: 1000000,
	}
}

// LoadSettings reads settings from DECISIONS_* environment variables,
// e.g. DECISIONS_CACHE_TTL=5m
func LoadSettings() (Settings, error) {
	return newSettingsLoader().load()
}

// LoadSettingsFile reads settings from a config file, environment variables
// take precedence over the file
func LoadSettingsFile(path string) (Settings, error) {
	l := newSettingsLoader()
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return l.load()
}

type settingsLoader struct {
	v *viper.Viper
}

func newSettingsLoader() *settingsLoader {
	v := viper.New()
	v.SetEnvPrefix("DECISIONS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault("cache_ttl", defaults.CacheTTL)
	v.SetDefault("cache_size", defaults.CacheSize)
	v.SetDefault("cost_limit", defaults.CostLimit)

	return &settingsLoader{v: v}
}

func (l *settingsLoader) load() (Settings, error) {
	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if s.CacheTTL < 0 {
		return Settings{}, fmt.Errorf("cache_ttl must not be negative, got %s", s.CacheTTL)
	}
	if s.CacheSize < 0 {
		return Settings{}, fmt.Errorf("cache_size must not be negative, got %d", s.CacheSize)
	}
	return s, nil
}
