package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "PARSEPUSH"

// dotenvPath is the optional file loaded into the environment before
// parseEnv reads it. Variables already set are not overridden.
var dotenvPath = ".env"

type envConfig struct {
	DataDir         string        `envconfig:"DATA_DIR"`
	AuthHeader      string        `envconfig:"AUTH_HEADER"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT"`
	LogLevel        string        `envconfig:"LOG_LEVEL"`
	LogBackend      string        `envconfig:"LOG_BACKEND"`
	LogFormat       string        `envconfig:"LOG_FORMAT"`
	VaultPassphrase string        `envconfig:"VAULT_PASSPHRASE"`
	VaultService    string        `envconfig:"VAULT_SERVICE"`
	RequireSecret   bool          `envconfig:"REQUIRE_SECRET"`
	Ephemeral       bool          `envconfig:"EPHEMERAL"`
}

// parseEnv overlays cfg with PARSEPUSH_* variables. Unset variables keep the
// current value. It panics on malformed values.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	ec := envConfig{
		DataDir:         cfg.DataDir,
		AuthHeader:      cfg.AuthHeader,
		RequestTimeout:  cfg.RequestTimeout,
		LogLevel:        cfg.LogLevel,
		LogBackend:      cfg.LogBackend,
		LogFormat:       cfg.LogFormat,
		VaultPassphrase: cfg.VaultPassphrase,
		VaultService:    cfg.VaultService,
		RequireSecret:   cfg.RequireSecret,
		Ephemeral:       cfg.Ephemeral,
	}
	if err := envconfig.Process(envPrefix, &ec); err != nil {
		panic(err)
	}

	cfg.DataDir = ec.DataDir
	cfg.AuthHeader = ec.AuthHeader
	cfg.RequestTimeout = ec.RequestTimeout
	cfg.LogLevel = ec.LogLevel
	cfg.LogBackend = ec.LogBackend
	cfg.LogFormat = ec.LogFormat
	cfg.VaultPassphrase = ec.VaultPassphrase
	cfg.VaultService = ec.VaultService
	cfg.RequireSecret = ec.RequireSecret
	cfg.Ephemeral = ec.Ephemeral
}
