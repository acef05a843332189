package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfigDefaults verifies the built-in defaults when no file or
// environment is present.
func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "Global", config.DefaultRegion)
	assert.Equal(t, 2024, config.DefaultYear)
	assert.False(t, config.Pretty)
}

// TestLoadConfigYAML verifies file values load, and that environment
// variables override the file.
func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"log_level: debug\ndefault_region: GB\ndefault_year: 2023\npretty: true\n"), 0o600))

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "GB", config.DefaultRegion)
	assert.Equal(t, 2023, config.DefaultYear)
	assert.True(t, config.Pretty)

	t.Setenv("CARBONCORE_DEFAULT_REGION", "DE")
	t.Setenv("CARBONCORE_DEFAULT_YEAR", "2025")

	config, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "DE", config.DefaultRegion)
	assert.Equal(t, 2025, config.DefaultYear)
}

// TestLoadConfigErrors covers missing files and malformed values.
func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("CARBONCORE_DEFAULT_YEAR", "not-a-year")
	_, err = loadConfig("")
	assert.Error(t, err)
}
