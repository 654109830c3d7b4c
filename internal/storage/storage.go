// Package storage opens the two storage tiers used by the application:
// settings.db for the server catalog and secrets.db for credentials.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/parsepush/internal/dbx"
	"github.com/dmitrijs2005/parsepush/internal/filex"
	"github.com/dmitrijs2005/parsepush/internal/migrations"
	"github.com/dmitrijs2005/parsepush/internal/repositories/settings"
	"github.com/dmitrijs2005/parsepush/internal/templates"
	"github.com/dmitrijs2005/parsepush/internal/vault"
)

const (
	SettingsFile = "settings.db"
	SecretsFile  = "secrets.db"
)

type Storage struct {
	Settings settings.Repository
	Vault    vault.Vault
	// TemplatesPath is empty for ephemeral storage.
	TemplatesPath string

	dbs []*sql.DB
}

// Open prepares dataDir (0700), migrates both databases and unlocks the
// vault with passphrase.
func Open(ctx context.Context, dataDir, service, passphrase string) (*Storage, error) {
	dir, err := filex.EnsureDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}

	s := &Storage{TemplatesPath: filepath.Join(dir, templates.FileName)}

	settingsDB, err := openDB(ctx, filepath.Join(dir, SettingsFile), migrations.SettingsDir)
	if err != nil {
		return nil, err
	}
	s.dbs = append(s.dbs, settingsDB)
	s.Settings = settings.NewSQLiteRepository(settingsDB)

	secretsPath := filepath.Join(dir, SecretsFile)
	if err := filex.EnsurePrivateFile(secretsPath); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("prepare secrets file: %w", err)
	}
	secretsDB, err := openDB(ctx, secretsPath, migrations.SecretsDir)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.dbs = append(s.dbs, secretsDB)

	v, err := vault.Open(ctx, secretsDB, service, passphrase)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.Vault = v

	return s, nil
}

// OpenEphemeral returns memory-only tiers; nothing survives the process.
func OpenEphemeral() *Storage {
	return &Storage{
		Settings: settings.NewMemoryRepository(),
		Vault:    vault.NewMemoryVault(),
	}
}

func openDB(ctx context.Context, path, migrationsDir string) (*sql.DB, error) {
	db, err := dbx.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Up(ctx, db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s *Storage) Close() error {
	var errs []error
	for _, db := range s.dbs {
		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.dbs = nil
	return errors.Join(errs...)
}
