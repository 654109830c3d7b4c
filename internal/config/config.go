package config

import (
	"os"
	"path/filepath"
	"time"
)

const appDirName = "ParsePushHelper"

// Config holds runtime settings for the parsepush CLI.
type Config struct {
	DataDir         string
	AuthHeader      string
	RequestTimeout  time.Duration
	LogLevel        string
	LogBackend      string
	LogFormat       string
	VaultPassphrase string
	VaultService    string
	RequireSecret   bool
	Ephemeral       bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = defaultDataDir()
	c.AuthHeader = "rest"
	c.RequestTimeout = 60 * time.Second
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.LogFormat = "text"
	c.VaultService = "com.parsepushhelper.apikey"
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return filepath.Join(".", "."+appDirName)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
