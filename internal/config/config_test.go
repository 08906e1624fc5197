package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
	  "intent": "meet fintech founders",
	  "location": "San Francisco",
	  "category": "ai",
	  "max_results": 10,
	  "timeout": 120,
	  "store": "events.csv",
	  "verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "meet fintech founders", cfg.Intent)
	assert.Equal(t, "San Francisco", cfg.Location)
	assert.Equal(t, "ai", cfg.Category)
	assert.Equal(t, 10, cfg.MaxResults)
	assert.Equal(t, 120, cfg.Timeout)
	assert.Equal(t, "events.csv", cfg.StorePath)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "{not json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config JSON")
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"reasonable values", Config{MaxResults: 10, Timeout: 60}, false},
		{"negative max results", Config{MaxResults: -1}, true},
		{"max results over cap", Config{MaxResults: 100}, true},
		{"negative timeout", Config{Timeout: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigRequest(t *testing.T) {
	cfg := Config{Intent: "x", Location: "NYC", Calendar: "tech-week", MaxResults: 7, Timeout: 30}
	req := cfg.Request()

	assert.Equal(t, "x", req.Intent)
	assert.Equal(t, "NYC", req.Location)
	assert.Equal(t, "tech-week", req.Calendar)
	assert.Equal(t, 7, req.MaxResults)
	assert.Equal(t, 30, req.TimeoutSeconds)
}
