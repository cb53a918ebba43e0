package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sonyremote/internal/sequencer"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	require.NoError(t, config.Validate())
	assert.Equal(t, 600*time.Millisecond, config.Remote.SettleDelay)
	assert.Equal(t, 3*time.Second, config.Remote.Timeout)
	assert.Equal(t, 3*time.Second, config.Remote.DisplayDuration)
	assert.Equal(t, sequencer.PolicyQueue, config.Policy())
	assert.Empty(t, config.Server.JWTSecret)
	assert.NotEmpty(t, config.Store.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"negative settle delay", func(c *Config) { c.Remote.SettleDelay = -time.Second }, "remote.settle_delay"},
		{"zero timeout", func(c *Config) { c.Remote.Timeout = 0 }, "remote.timeout"},
		{"zero display duration", func(c *Config) { c.Remote.DisplayDuration = 0 }, "remote.display_duration"},
		{"unknown policy", func(c *Config) { c.Remote.BatchPolicy = "shuffle" }, "remote.batch_policy"},
		{"missing store path", func(c *Config) { c.Store.Path = "" }, "store.path"},
		{"missing listen address", func(c *Config) { c.Server.Listen = "" }, "server.listen"},
		{"short jwt secret", func(c *Config) { c.Server.JWTSecret = "short" }, "server.jwt_secret"},
		{"zero token expiry", func(c *Config) { c.Server.TokenExpiryHours = 0 }, "server.token_expiry_hours"},
		{"zero history size", func(c *Config) { c.Status.HistorySize = 0 }, "status.history_size"},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewDefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("zero settle delay is allowed", func(t *testing.T) {
		config := NewDefaultConfig()
		config.Remote.SettleDelay = 0
		assert.NoError(t, config.Validate())
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yml")
		content := "remote:\n  settle_delay: 250ms\n  batch_policy: preempt\nlog:\n  level: debug\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, config.Remote.SettleDelay)
		assert.Equal(t, sequencer.PolicyPreempt, config.Policy())
		assert.Equal(t, "debug", config.Log.Level)
		assert.Equal(t, 3*time.Second, config.Remote.Timeout)
		assert.Equal(t, ":8080", config.Server.Listen)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yml")
		require.NoError(t, os.WriteFile(path, []byte("remote:\n  batch_policy: shuffle\n"), 0600))

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yml")
		require.NoError(t, os.WriteFile(path, []byte("remote: [unclosed"), 0600))

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		config, err := LoadOrDefault(filepath.Join(dir, "absent.yml"))
		require.NoError(t, err)
		assert.Equal(t, NewDefaultConfig(), config)
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sonyremote.yml")

	config := NewDefaultConfig()
	config.Remote.SettleDelay = 800 * time.Millisecond
	config.Server.JWTSecret = "0123456789abcdef"
	config.Store.Path = "/tmp/settings.db"
	require.NoError(t, config.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}
