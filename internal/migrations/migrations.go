// Package migrations embeds the goose migrations of both storage tiers.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed settings/*.sql secrets/*.sql
var FS embed.FS

const (
	SettingsDir = "settings"
	SecretsDir  = "secrets"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func init() {
	goose.SetLogger(goose.NopLogger())
}

// Up applies every pending migration from dir (SettingsDir or SecretsDir).
func Up(ctx context.Context, db *sql.DB, dir string) error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	return nil
}
