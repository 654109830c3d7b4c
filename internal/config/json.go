package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/parsepush/internal/flagx"
	"github.com/dmitrijs2005/parsepush/internal/timex"
)

// JsonConfig is a DTO used exclusively for config file unmarshalling. Absent
// keys leave the corresponding Config field untouched.
type JsonConfig struct {
	DataDir         string          `json:"data_dir" yaml:"data_dir"`
	AuthHeader      string          `json:"auth_header" yaml:"auth_header"`
	RequestTimeout  *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel        string          `json:"log_level" yaml:"log_level"`
	LogBackend      string          `json:"log_backend" yaml:"log_backend"`
	LogFormat       string          `json:"log_format" yaml:"log_format"`
	VaultPassphrase string          `json:"vault_passphrase" yaml:"vault_passphrase"`
	VaultService    string          `json:"vault_service" yaml:"vault_service"`
	RequireSecret   *bool           `json:"require_secret" yaml:"require_secret"`
	Ephemeral       *bool           `json:"ephemeral" yaml:"ephemeral"`
}

// parseJson overlays cfg with the file named by -c or -config. Files ending
// in .yaml or .yml are read as YAML, anything else as JSON. It panics on read
// or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if isYAML(jsonConfigFile) {
		err = yaml.Unmarshal(data, &jc)
	} else {
		err = json.Unmarshal(data, &jc)
	}
	if err != nil {
		panic(err)
	}

	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.AuthHeader, jc.AuthHeader)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.VaultPassphrase, jc.VaultPassphrase)
	setString(&cfg.VaultService, jc.VaultService)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RequireSecret != nil {
		cfg.RequireSecret = *jc.RequireSecret
	}
	if jc.Ephemeral != nil {
		cfg.Ephemeral = *jc.Ephemeral
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
