// Package config loads contractlens settings from ~/.contractlens/config.yaml with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/contractlens/contractlens/internal/cache"
	"github.com/contractlens/contractlens/internal/logging"
	"github.com/contractlens/contractlens/internal/pagination"
)

// Environment overrides.
const (
	EnvHome      = "CONTRACTLENS_HOME"
	EnvAPIURL    = "CONTRACTLENS_API_URL"
	EnvLogLevel  = "CONTRACTLENS_LOG_LEVEL"
	EnvLogFormat = "CONTRACTLENS_LOG_FORMAT"
)

// Defaults.
const (
	DefaultBaseURL        = "http://localhost:8080/api"
	DefaultTimeoutSeconds = 30
	DefaultUserAgent      = "contractlens"
	ConfigFileName        = "config.yaml"
)

// Output formats accepted by list-style commands.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full contractlens configuration.
type Config struct {
	API     APIConfig     `yaml:"api"     json:"api"`
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Cache   CacheConfig   `yaml:"cache"   json:"cache"`

	path string
}

// APIConfig locates the contract API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"        json:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"      json:"user_agent"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// OutputConfig controls command output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	PageSize      int    `yaml:"page_size"      json:"page_size"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// CacheConfig controls the reference-data cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"             json:"enabled"`
	Directory  string `yaml:"directory,omitempty" json:"directory,omitempty"`
	TTLSeconds int    `yaml:"ttl_seconds"         json:"ttl_seconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
			UserAgent:      DefaultUserAgent,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			PageSize:      pagination.DefaultPageSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: cache.DefaultTTLSeconds,
		},
	}
}

// New returns the effective configuration: defaults, then the config file if it
// exists, then environment overrides. A broken config file is ignored and the
// defaults are kept.
func New() *Config {
	cfg, err := Load("")
	if err != nil {
		cfg = Default()
		cfg.ApplyEnv()
	}
	return cfg
}

// Load reads path (the default config file when empty) over the defaults and
// applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := FilePath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	cfg.path = path
	if err := ShallowMergeYAML(cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string { return c.path }

// ApplyEnv overrides fields from CONTRACTLENS_* variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	c.Cache.Enabled = cache.EnabledFromEnv(c.Cache.Enabled)
	c.Cache.TTLSeconds = cache.TTLFromEnv(c.Cache.TTLSeconds)
	c.Cache.Directory = cache.DirFromEnv(c.Cache.Directory)
}

// Validate checks every section.
func (c *Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url %q must be an absolute http(s) URL", c.API.BaseURL))
	}
	if c.API.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds))
	}
	if !slices.Contains([]string{FormatTable, FormatJSON, FormatCSV}, c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("output.default_format %q must be table, json or csv", c.Output.DefaultFormat))
	}
	if err := pagination.ValidatePageSize(c.Output.PageSize); err != nil {
		errs = append(errs, fmt.Errorf("output.page_size: %w", err))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if c.Logging.Format != logging.FormatJSON && c.Logging.Format != logging.FormatConsole {
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}
	if c.Cache.Enabled {
		if err := cache.ValidateTTL(c.Cache.TTLSeconds); err != nil {
			errs = append(errs, fmt.Errorf("cache.ttl_seconds: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// CacheDir returns the configured cache directory, defaulting to <config dir>/cache.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Directory != "" {
		return c.Cache.Directory, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Set updates one dotted key ("api.base_url", "cache.enabled", ...) from a string.
func (c *Config) Set(key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "api.base_url":
		c.API.BaseURL = value
	case "api.timeout_seconds":
		c.API.TimeoutSeconds, err = strconv.Atoi(value)
	case "api.user_agent":
		c.API.UserAgent = value
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "output.page_size":
		c.Output.PageSize, err = strconv.Atoi(value)
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	case "cache.enabled":
		c.Cache.Enabled, err = strconv.ParseBool(value)
	case "cache.directory":
		c.Cache.Directory = value
	case "cache.ttl_seconds":
		c.Cache.TTLSeconds, err = cache.ParseTTL(value)
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
	}
	return nil
}
