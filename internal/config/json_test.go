package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"data_dir":         "/srv/parsepush",
		"auth_header":      "master",
		"request_timeout":  "30s",
		"log_level":        "debug",
		"log_backend":      "zap",
		"log_format":       "json",
		"vault_passphrase": "pw",
		"vault_service":    "svc",
		"require_secret":   true,
		"ephemeral":        true,
	})

	t.Run("loads all fields", func(t *testing.T) {
		isolate(t, "-config", full)

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, &Config{
			DataDir:         "/srv/parsepush",
			AuthHeader:      "master",
			RequestTimeout:  30 * time.Second,
			LogLevel:        "debug",
			LogBackend:      "zap",
			LogFormat:       "json",
			VaultPassphrase: "pw",
			VaultService:    "svc",
			RequireSecret:   true,
			Ephemeral:       true,
		}, cfg)
	})

	t.Run("absent keys keep current values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "warn"})
		isolate(t, "-c", partial)

		cfg := &Config{}
		cfg.LoadDefaults()
		want := *cfg
		want.LogLevel = "warn"

		parseJson(cfg)
		assert.Equal(t, want, *cfg)
	})

	t.Run("integer nanoseconds timeout", func(t *testing.T) {
		ns := writeTempJSON(t, dir, "ns.json", map[string]any{"request_timeout": 2000000000})
		isolate(t, "-c", ns)

		cfg := &Config{}
		parseJson(cfg)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		isolate(t)

		cfg := &Config{DataDir: "/keep"}
		parseJson(cfg)
		assert.Equal(t, "/keep", cfg.DataDir)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		isolate(t, "-config", bad)

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		isolate(t, "-c", filepath.Join(dir, "missing.json"))

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

func Test_parseJson_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parsepush.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /srv/parsepush
auth_header: master
request_timeout: 45s
log_backend: zap
require_secret: true
`), 0o600))

	t.Run("loads fields", func(t *testing.T) {
		isolate(t, "-c", path)

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "/srv/parsepush", cfg.DataDir)
		assert.Equal(t, "master", cfg.AuthHeader)
		assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "zap", cfg.LogBackend)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.True(t, cfg.RequireSecret)
		assert.False(t, cfg.Ephemeral)
	})

	t.Run("invalid YAML panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yml")
		require.NoError(t, os.WriteFile(bad, []byte("request_timeout: [oops"), 0o600))
		isolate(t, "-config", bad)

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

func Test_isYAML(t *testing.T) {
	assert.True(t, isYAML("a/b.yaml"))
	assert.True(t, isYAML("B.YML"))
	assert.False(t, isYAML("c.json"))
	assert.False(t, isYAML("noext"))
}
