// Package config reads the server settings from the environment, after
// loading an optional .env file from the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ironsheep/image-filters-mcp/internal/logger"
)

// Environment variable names.
const (
	EnvLogLevel  = "IMAGE_MCP_LOG_LEVEL"
	EnvLogFormat = "IMAGE_MCP_LOG_FORMAT"
	EnvOutputDir = "IMAGE_MCP_OUTPUT_DIR"
	EnvCache     = "IMAGE_MCP_CACHE"
)

// Config holds the server settings.
type Config struct {
	// LogLevel is the minimum level written to stderr.
	LogLevel zerolog.Level

	// LogFormat is "console" or "json".
	LogFormat string

	// OutputDir resolves relative output_path arguments. Empty means the
	// working directory.
	OutputDir string

	// CacheEnabled keeps decoded source images in memory between calls.
	CacheEnabled bool
}

// Load reads .env if present and then the process environment. Variables
// already set in the environment win over .env entries.
func Load() (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	return FromEnv()
}

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error; a malformed one is.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	level, err := logger.ParseLevel(os.Getenv(EnvLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}

	format := strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogFormat)))
	switch format {
	case "":
		format = "console"
	case "console", "json":
	default:
		return nil, fmt.Errorf("%s: unsupported log format %q", EnvLogFormat, format)
	}

	cache := true
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvCache))) {
	case "off", "false", "0", "no":
		cache = false
	}

	return &Config{
		LogLevel:     level,
		LogFormat:    format,
		OutputDir:    os.Getenv(EnvOutputDir),
		CacheEnabled: cache,
	}, nil
}

// ResolveOutput maps an output_path argument to a file path. Absolute paths
// are returned unchanged; relative ones are joined to OutputDir.
func (c *Config) ResolveOutput(path string) string {
	if path == "" || filepath.IsAbs(path) || c.OutputDir == "" {
		return path
	}
	return filepath.Join(c.OutputDir, path)
}
