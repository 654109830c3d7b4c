// Package services ties the storage tiers and the status fetcher together
// for the command line.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/parsepush/internal/catalog"
	"github.com/dmitrijs2005/parsepush/internal/logging"
	"github.com/dmitrijs2005/parsepush/internal/models"
	"github.com/dmitrijs2005/parsepush/internal/vault"
)

// ServerStore keeps server configurations and their credentials consistent
// across the catalog and the vault. Persistence failures are logged and
// swallowed; only validation and index errors reach the caller.
//
// A ServerStore has a single owner and is not safe for concurrent mutation.
type ServerStore interface {
	Add(ctx context.Context, cfg models.ServerConfiguration, secret string) error
	Update(ctx context.Context, cfg models.ServerConfiguration, secret string) error
	SecretFor(ctx context.Context, cfg models.ServerConfiguration) (string, bool)
	Delete(ctx context.Context, ids []uuid.UUID)
	Move(ctx context.Context, source []int, destination int) error
	List() []models.ServerConfiguration
	Get(id uuid.UUID) (models.ServerConfiguration, bool)
	At(index int) (models.ServerConfiguration, error)
}

type serverStore struct {
	catalog       *catalog.Catalog
	vault         vault.Vault
	logger        logging.Logger
	requireSecret bool
}

type StoreOption func(*serverStore)

// WithSecretRequired rejects blank credentials on Add and Update.
func WithSecretRequired(required bool) StoreOption {
	return func(s *serverStore) { s.requireSecret = required }
}

// NewServerStore wraps an already loaded catalog. Vault entries that belong
// to no catalog record are removed.
func NewServerStore(ctx context.Context, c *catalog.Catalog, v vault.Vault, logger logging.Logger, opts ...StoreOption) ServerStore {
	s := &serverStore{catalog: c, vault: v, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	s.reconcile(ctx)
	return s
}

func (s *serverStore) reconcile(ctx context.Context) {
	keys, err := s.vault.Keys(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list vault keys", "error", err)
		return
	}

	for _, key := range keys {
		id, err := uuid.Parse(key)
		if err == nil {
			if _, ok := s.catalog.Get(id); ok {
				continue
			}
		}
		if err := s.vault.Delete(ctx, key); err != nil {
			s.logger.Error(ctx, "failed to remove orphan secret", "key", key, "error", err)
			continue
		}
		s.logger.Info(ctx, "removed orphan secret", "key", key)
	}
}

func (s *serverStore) validate(cfg models.ServerConfiguration, secret string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if s.requireSecret {
		return models.RequireSecret(secret)
	}
	return nil
}

func (s *serverStore) Add(ctx context.Context, cfg models.ServerConfiguration, secret string) error {
	if err := s.validate(cfg, secret); err != nil {
		return err
	}

	if err := s.catalog.Append(ctx, cfg); err != nil {
		s.logger.Error(ctx, "failed to persist server catalog", "server", cfg.Name, "error", err)
	}

	if strings.TrimSpace(secret) == "" {
		return nil
	}
	if err := s.vault.Save(ctx, cfg.SecretKey(), secret); err != nil {
		s.logger.Error(ctx, "failed to save secret", "server", cfg.Name, "error", err)
	}
	return nil
}

func (s *serverStore) Update(ctx context.Context, cfg models.ServerConfiguration, secret string) error {
	if err := s.validate(cfg, secret); err != nil {
		return err
	}

	found, err := s.catalog.Replace(ctx, cfg)
	if !found {
		err = s.catalog.Append(ctx, cfg)
	}
	if err != nil {
		s.logger.Error(ctx, "failed to persist server catalog", "server", cfg.Name, "error", err)
	}

	if strings.TrimSpace(secret) == "" {
		if err := s.vault.Delete(ctx, cfg.SecretKey()); err != nil {
			s.logger.Error(ctx, "failed to delete secret", "server", cfg.Name, "error", err)
		}
		return nil
	}
	if err := s.vault.Save(ctx, cfg.SecretKey(), secret); err != nil {
		s.logger.Error(ctx, "failed to save secret", "server", cfg.Name, "error", err)
	}
	return nil
}

// SecretFor reads the credential of a configuration still in the catalog.
func (s *serverStore) SecretFor(ctx context.Context, cfg models.ServerConfiguration) (string, bool) {
	if _, ok := s.catalog.Get(cfg.ID); !ok {
		return "", false
	}

	secret, ok, err := s.vault.Read(ctx, cfg.SecretKey())
	if err != nil {
		s.logger.Error(ctx, "failed to read secret", "server", cfg.Name, "error", err)
		return "", false
	}
	return secret, ok
}

// Delete removes the configurations first and their secrets second, so a
// secret is never reachable without its configuration.
func (s *serverStore) Delete(ctx context.Context, ids []uuid.UUID) {
	if len(ids) == 0 {
		return
	}

	if _, err := s.catalog.RemoveAll(ctx, ids); err != nil {
		s.logger.Error(ctx, "failed to persist server catalog", "error", err)
	}

	for _, id := range ids {
		if err := s.vault.Delete(ctx, id.String()); err != nil {
			s.logger.Error(ctx, "failed to delete secret", "id", id, "error", err)
		}
	}
}

func (s *serverStore) Move(ctx context.Context, source []int, destination int) error {
	err := s.catalog.Reorder(ctx, source, destination)
	if errors.Is(err, catalog.ErrIndexOutOfRange) {
		return err
	}
	if err != nil {
		s.logger.Error(ctx, "failed to persist server catalog", "error", err)
	}
	return nil
}

func (s *serverStore) List() []models.ServerConfiguration {
	return s.catalog.List()
}

func (s *serverStore) Get(id uuid.UUID) (models.ServerConfiguration, bool) {
	return s.catalog.Get(id)
}

func (s *serverStore) At(index int) (models.ServerConfiguration, error) {
	return s.catalog.At(index)
}
