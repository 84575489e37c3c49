package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Server:  ServerConfig{Port: 8787, LogLevel: "info"},
		Library: LibraryConfig{Root: t.TempDir()},
		OMDb:    OMDbConfig{APIKey: "test-key"},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.Empty(t, validConfig(t).Validate())
}

func TestValidate_MissingRoot(t *testing.T) {
	cfg := validConfig(t)
	cfg.Library.Root = ""

	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "library.root")
}

func TestValidate_RootDoesNotExist(t *testing.T) {
	cfg := validConfig(t)
	cfg.Library.Root = filepath.Join(t.TempDir(), "nope")

	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "does not exist")
}

func TestValidate_RootIsAFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	cfg.Library.Root = file

	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "not a directory")
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig(t)
	cfg.OMDb.APIKey = "   "

	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "omdb.api_key")
}

func TestValidate_BadPortAndLevel(t *testing.T) {
	cfg := validConfig(t)
	cfg.Server.Port = 70000
	cfg.Server.LogLevel = "verbose"
	cfg.Indexing.Concurrency = -1

	errs := cfg.Validate()
	require.Len(t, errs, 3)
	joined := strings.Join(errs, "\n")
	assert.Contains(t, joined, "server.port")
	assert.Contains(t, joined, "server.log_level")
	assert.Contains(t, joined, "indexing.concurrency")
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Path: "config.toml", Errors: []string{"omdb.api_key: required"}}
	assert.True(t, err.HasErrors())
	assert.Contains(t, err.Error(), "config config.toml")
	assert.Contains(t, err.Error(), "omdb.api_key: required")
}
