package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		start       Config
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-d", "/tmp/pp", "-h", "master", "-t", "10", "-l", "debug", "-e"},
			expected: &Config{
				DataDir: "/tmp/pp", AuthHeader: "master", RequestTimeout: 10 * time.Second,
				LogLevel: "debug", Ephemeral: true,
			},
		},
		{
			name:     "timeout untouched without -t",
			args:     []string{"-l", "warn"},
			start:    Config{RequestTimeout: 90 * time.Second},
			expected: &Config{RequestTimeout: 90 * time.Second, LogLevel: "warn"},
		},
		{
			name:     "zero disables timeout",
			args:     []string{"-t", "0"},
			start:    Config{RequestTimeout: time.Minute},
			expected: &Config{},
		},
		{
			name:     "config flag is ignored here",
			args:     []string{"-c", "cfg.json", "-d", "/x"},
			expected: &Config{DataDir: "/x"},
		},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t, tt.args...)
			cfg := tt.start

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(&cfg) })
			assert.Empty(t, cmp.Diff(tt.expected, &cfg))
		})
	}
}
