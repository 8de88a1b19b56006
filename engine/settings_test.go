package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("DECISIONS_CACHE_TTL", "5m")
	t.Setenv("DECISIONS_CACHE_SIZE", "16")
	t.Setenv("DECISIONS_COST_LIMIT", "500")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, s.CacheTTL)
	assert.Equal(t, 16, s.CacheSize)
	assert.Equal(t, uint64(500), s.CostLimit)
}

func TestLoadSettingsRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unparsable ttl", "DECISIONS_CACHE_TTL", "soon"},
		{"negative ttl", "DECISIONS_CACHE_TTL", "-1s"},
		{"negative cache size", "DECISIONS_CACHE_SIZE", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadSettings()
			assert.Error(t, err)
		})
	}
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_ttl: 30s\ncost_limit: 42\n"), 0o600))

	s, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, s.CacheTTL)
	assert.Equal(t, uint64(42), s.CostLimit)
	assert.Equal(t, DefaultSettings().CacheSize, s.CacheSize)

	// environment overrides the file
	t.Setenv("DECISIONS_COST_LIMIT", "7")
	s, err = LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), s.CostLimit)
}

func TestLoadSettingsFileMissing(t *testing.T) {
	_, err := LoadSettingsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
