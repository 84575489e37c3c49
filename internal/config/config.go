// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Library  LibraryConfig  `toml:"library"`
	OMDb     OMDbConfig     `toml:"omdb"`
	Cache    CacheConfig    `toml:"cache"`
	Indexing IndexingConfig `toml:"indexing"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type LibraryConfig struct {
	Root        string   `toml:"root"`
	Extensions  []string `toml:"extensions"`
	NoiseTokens string   `toml:"noise_tokens"` // comma-separated
}

type OMDbConfig struct {
	APIKey string `toml:"api_key"`
	URL    string `toml:"url"` // override for testing; empty uses the public API
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // accepted for compatibility, persistence is not implemented
}

type IndexingConfig struct {
	Auto        bool `toml:"auto"`
	Concurrency int  `toml:"concurrency"`
}

// Load reads and parses the configuration file. Defaults are pre-applied,
// so absent keys keep their documented values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	cfg := Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     8787,
			LogLevel: "info",
		},
		Library: LibraryConfig{
			Extensions: []string{".mp4", ".mkv", ".avi"},
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Indexing: IndexingConfig{
			Auto:        true,
			Concurrency: 4,
		},
	}
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// NoiseTokenList splits the configured comma-separated token list, trimming
// entries and dropping empties. Entries containing a space or hyphen are
// compound phrases and kept intact.
func (c LibraryConfig) NoiseTokenList() []string {
	var tokens []string
	for _, tok := range strings.Split(c.NoiseTokens, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
