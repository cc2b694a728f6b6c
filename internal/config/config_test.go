package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Listen)
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, "./data/recipebox.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Auth.MinPasswordLength)
	assert.Equal(t, 60, cfg.Auth.TokenCacheTTL)
	assert.Equal(t, "./data/uploads", cfg.Uploads.Dir)
	assert.Equal(t, int64(10<<20), cfg.Uploads.MaxImageSize)
	assert.False(t, cfg.Gravatar.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, `
listen: "127.0.0.1:9000"
database:
  path: "/tmp/test.db"
auth:
  min_password_length: 8
gravatar:
  enabled: true
  size: 120
`))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, 8, cfg.Auth.MinPasswordLength)
	// Unset keys in a present section fall back to defaults
	assert.Equal(t, 60, cfg.Auth.TokenCacheTTL)
	assert.True(t, cfg.Gravatar.Enabled)
	assert.Equal(t, 120, cfg.Gravatar.Size)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RECIPEBOX_LISTEN", "0.0.0.0:7000")

	cfg, err := Load(writeConfigFile(t, `listen: "127.0.0.1:9000"`))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7000", cfg.Listen)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty database path",
			content: `
database:
  path: ""
`,
		},
		{
			name: "empty uploads dir",
			content: `
uploads:
  dir: ""
`,
		},
		{
			name: "zero minimum password length",
			content: `
auth:
  min_password_length: 0
`,
		},
		{
			name: "negative token cache ttl",
			content: `
auth:
  token_cache_ttl: -1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}
