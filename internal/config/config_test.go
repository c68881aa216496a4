package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractlens/contractlens/internal/cache"
	"github.com/contractlens/contractlens/internal/logging"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")
	t.Setenv(cache.EnvCacheEnabled, "")
	t.Setenv(cache.EnvTTLSeconds, "")
	t.Setenv(cache.EnvCacheDir, "")
	return home
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	isolate(t)
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, 10, cfg.Output.PageSize)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	home := isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, filepath.Join(home, ConfigFileName), cfg.Path())
}

func TestLoadOverlaysFile(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, home, `
api:
  base_url: https://contratos.example.es/api
logging:
  level: debug
  format: json
unknown_section:
  foo: bar
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://contratos.example.es/api", cfg.API.BaseURL)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.API.TimeoutSeconds, "absent keys keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, FormatTable, cfg.Output.DefaultFormat, "absent section keeps defaults")
}

func TestLoadBrokenFile(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, home, "api: [unterminated")
	_, err := Load(path)
	require.Error(t, err)

	cfg := New()
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL, "New falls back to defaults")
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIURL, "https://override.example/api")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(cache.EnvCacheEnabled, "false")
	t.Setenv(cache.EnvTTLSeconds, "600")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://override.example/api", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 600, cfg.Cache.TTLSeconds)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "relative url", mutate: func(c *Config) { c.API.BaseURL = "/api" }, want: "api.base_url"},
		{name: "ftp url", mutate: func(c *Config) { c.API.BaseURL = "ftp://x/api" }, want: "api.base_url"},
		{name: "zero timeout", mutate: func(c *Config) { c.API.TimeoutSeconds = 0 }, want: "api.timeout_seconds"},
		{name: "format", mutate: func(c *Config) { c.Output.DefaultFormat = "xml" }, want: "output.default_format"},
		{name: "page size", mutate: func(c *Config) { c.Output.PageSize = 20 }, want: "output.page_size"},
		{name: "level", mutate: func(c *Config) { c.Logging.Level = "loud" }, want: "logging.level"},
		{name: "log format", mutate: func(c *Config) { c.Logging.Format = "text" }, want: "logging.format"},
		{name: "ttl", mutate: func(c *Config) { c.Cache.TTLSeconds = 1 }, want: "cache.ttl_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := Default()
	cfg.Cache.Enabled = false
	cfg.Cache.TTLSeconds = 0
	assert.NoError(t, cfg.Validate(), "ttl is not checked when the cache is off")
}

func TestSetAndSave(t *testing.T) {
	home := isolate(t)
	cfg := Default()
	require.NoError(t, cfg.Set("output.page_size", "25"))
	require.NoError(t, cfg.Set("cache.ttl_seconds", "2h"))
	require.NoError(t, cfg.Set("API.BASE_URL", "https://a.example/api"))
	require.ErrorIs(t, cfg.Set("output.page_size", "many"), ErrInvalidConfig)
	require.ErrorIs(t, cfg.Set("nope", "1"), ErrInvalidConfig)

	path := filepath.Join(home, "nested", ConfigFileName)
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, loaded.Output.PageSize)
	assert.Equal(t, 7200, loaded.Cache.TTLSeconds)
	assert.Equal(t, "https://a.example/api", loaded.API.BaseURL)
}

func TestCacheDir(t *testing.T) {
	home := isolate(t)
	cfg := Default()
	dir, err := cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache"), dir)

	cfg.Cache.Directory = "/var/cache/contractlens"
	dir, err = cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/contractlens", dir)
}

func TestGlobalConfig(t *testing.T) {
	isolate(t)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Same(t, cfg, GetGlobalConfig())

	ResetGlobalConfigForTest()
	assert.NotSame(t, cfg, GetGlobalConfig())
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)
	assert.Empty(t, got.File)

	lc.File = "/tmp/contractlens.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/contractlens.log", got.File)
	assert.Equal(t, "debug", got.Level)
}

func TestEnsureLogDir(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	require.NoError(t, EnsureLogDir(cfg))

	cfg.Logging.File = filepath.Join(dir, "logs", "contractlens.log")
	require.NoError(t, EnsureLogDir(cfg))
	assert.DirExists(t, filepath.Join(dir, "logs"))
}
