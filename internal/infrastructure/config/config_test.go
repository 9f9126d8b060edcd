package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentConfigLoader_Load(t *testing.T) {
	t.Run("defaults are applied when env is empty", func(t *testing.T) {
		loader := NewEnvironmentConfigLoader()

		cfg, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, "3306", cfg.Database.Port)
		assert.Equal(t, "equiptrack", cfg.Database.Database)
		assert.Equal(t, "8090", cfg.Server.Port)
		assert.Equal(t, "8080", cfg.Health.Port)
		assert.False(t, cfg.Validation.IncludeRMA)
		assert.True(t, cfg.Report.Enabled)
		assert.Equal(t, 18, cfg.Report.GenerateAfter)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_MAX_OPEN_CONNS", "30")
		t.Setenv("VALIDATE_RMA_MACS", "true")
		t.Setenv("REPORT_CHECK_INTERVAL", "1m")

		cfg, err := NewEnvironmentConfigLoader().Load()

		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 30, cfg.Database.MaxOpenConns)
		assert.True(t, cfg.Validation.IncludeRMA)
		assert.Equal(t, time.Minute, cfg.Report.CheckInterval)
	})

	t.Run("invalid int env falls back to default", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

		cfg, err := NewEnvironmentConfigLoader().Load()

		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	})

	t.Run("YAML config file overlays env values", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := []byte("server:\n  port: \"9999\"\nvalidation:\n  include_rma: true\n")
		require.NoError(t, os.WriteFile(path, content, 0644))

		t.Setenv("CONFIG_FILE", path)

		cfg, err := NewEnvironmentConfigLoader().Load()

		require.NoError(t, err)
		assert.Equal(t, "9999", cfg.Server.Port)
		assert.True(t, cfg.Validation.IncludeRMA)
	})

	t.Run("missing config file is an error", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

		_, err := NewEnvironmentConfigLoader().Load()

		assert.Error(t, err)
	})

	t.Run("invalid report hour is rejected", func(t *testing.T) {
		t.Setenv("REPORT_GENERATE_AFTER", "25")

		_, err := NewEnvironmentConfigLoader().Load()

		assert.Error(t, err)
	})
}
