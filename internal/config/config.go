// Package config loads settings for the astro executables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/hectorherrerafullstack/astroApi/store"
)

// Prefix is prepended to every environment variable, e.g. ASTRO_BASE_URL.
const Prefix = "ASTRO"

// Config holds settings shared by the CLI and the MCP server.
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" default:"http://localhost:8000/api"`
	Timezone    string        `envconfig:"TIMEZONE" default:"UTC"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`

	// StorePath is the SQLite chart store. Empty means the XDG data dir.
	StorePath string `envconfig:"STORE_PATH" default:""`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`

	CacheFreshness time.Duration `envconfig:"CACHE_FRESHNESS" default:"6h"`
	CacheRetention time.Duration `envconfig:"CACHE_RETENTION" default:"24h"`

	// MCP server only
	MCPServerName string `envconfig:"MCP_SERVER_NAME" default:"astro-mcp-server"`
	MCPPort       int    `envconfig:"MCP_PORT" default:"11546"`
}

// ResolveDefaults fills derived values and rejects inconsistent settings.
func (c *Config) ResolveDefaults() error {
	if c.BaseURL == "" {
		return errors.New("BASE_URL must not be empty")
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative: %s", c.HTTPTimeout)
	}
	if c.CacheFreshness <= 0 {
		return fmt.Errorf("CACHE_FRESHNESS must be positive: %s", c.CacheFreshness)
	}
	if c.CacheRetention < c.CacheFreshness {
		return fmt.Errorf("CACHE_RETENTION (%s) must not be shorter than CACHE_FRESHNESS (%s)", c.CacheRetention, c.CacheFreshness)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.StorePath == "" {
		p, err := store.DefaultPath()
		if err != nil {
			return err
		}
		c.StorePath = p
	}
	return nil
}

// Load reads envFiles (default ".env") into the environment when present,
// then parses ASTRO_* variables.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Str("timezone", cfg.Timezone).
		Dur("http_timeout", cfg.HTTPTimeout).
		Str("store_path", cfg.StorePath).
		Str("log_level", cfg.LogLevel).
		Bool("debug", cfg.Debug).
		Dur("cache_freshness", cfg.CacheFreshness).
		Dur("cache_retention", cfg.CacheRetention).
		Msg("Configuration loaded")

	return &cfg, nil
}
