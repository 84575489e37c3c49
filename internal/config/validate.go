package config

import (
	"fmt"
	"os"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Library root must exist before any request is served
	if c.Library.Root == "" {
		errs = append(errs, "library.root: required")
	} else if info, err := os.Stat(c.Library.Root); err != nil {
		errs = append(errs, fmt.Sprintf("library.root: directory %q does not exist", c.Library.Root))
	} else if !info.IsDir() {
		errs = append(errs, fmt.Sprintf("library.root: %q is not a directory", c.Library.Root))
	}

	if strings.TrimSpace(c.OMDb.APIKey) == "" {
		errs = append(errs, "omdb.api_key: required")
	}

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.Indexing.Concurrency < 0 {
		errs = append(errs, fmt.Sprintf("indexing.concurrency: must not be negative, got %d", c.Indexing.Concurrency))
	}

	return errs
}
