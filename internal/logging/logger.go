// Package logging defines the structured-logging interface used across the
// project together with slog and zap implementations. Both implementations
// redact attributes whose key names a secret.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "status fetched", "server", cfg.Name, "records", n)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

const Redacted = "[REDACTED]"

var ErrUnknownBackend = errors.New("unknown log backend")

var secretMarkers = []string{"secret", "apikey", "api_key", "password", "passphrase", "masterkey"}

// IsSecretKey reports whether an attribute with this key must never be
// written in clear.
func IsSecretKey(key string) bool {
	k := strings.ToLower(key)
	for _, m := range secretMarkers {
		if strings.Contains(k, m) {
			return true
		}
	}
	return false
}

// New builds a logger writing to w. backend is "slog" or "zap", format is
// "text" or "json" and level one of debug, info, warn, error.
func New(backend, level, format string, w io.Writer) (Logger, error) {
	switch strings.ToLower(backend) {
	case "", "slog":
		return newSlog(level, format, w), nil
	case "zap":
		return newZap(level, format, w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

type nopLogger struct{}

// Nop returns a logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) Logger                  { return n }
