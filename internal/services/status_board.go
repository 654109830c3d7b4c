package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/parsepush/internal/logging"
	"github.com/dmitrijs2005/parsepush/internal/models"
	"github.com/dmitrijs2005/parsepush/internal/pushstatus"
)

// StatusFetcher is satisfied by *pushstatus.Client.
type StatusFetcher interface {
	FetchStatuses(ctx context.Context, cfg models.ServerConfiguration, secret string) ([]models.PushStatusEntry, error)
}

// SecretSource is satisfied by ServerStore.
type SecretSource interface {
	SecretFor(ctx context.Context, cfg models.ServerConfiguration) (string, bool)
}

// StatusSnapshot is what the board currently shows.
type StatusSnapshot struct {
	ConfigurationID uuid.UUID
	Entries         []models.PushStatusEntry
	Loading         bool
	ErrorMessage    string
	Err             error
	LastUpdated     time.Time
}

// StatusBoard owns the displayed push status records. Starting a load
// cancels the one in flight, and a result is published only while its load
// is still the latest, so an older response never replaces a newer one.
type StatusBoard struct {
	fetcher StatusFetcher
	secrets SecretSource
	logger  logging.Logger
	now     func() time.Time

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	snap   StatusSnapshot
}

func NewStatusBoard(fetcher StatusFetcher, secrets SecretSource, logger logging.Logger) *StatusBoard {
	return &StatusBoard{
		fetcher: fetcher,
		secrets: secrets,
		logger:  logger,
		now:     time.Now,
	}
}

// Load fetches the records of cfg and returns the board afterwards. A failed
// load clears the entries and records a message for the user.
func (b *StatusBoard) Load(ctx context.Context, cfg models.ServerConfiguration) StatusSnapshot {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	b.gen++
	gen := b.gen
	b.cancel = cancel
	if b.snap.ConfigurationID != cfg.ID {
		b.snap = StatusSnapshot{ConfigurationID: cfg.ID}
	}
	b.snap.Loading = true
	b.mu.Unlock()

	secret, _ := b.secrets.SecretFor(ctx, cfg)
	entries, err := b.fetcher.FetchStatuses(ctx, cfg, secret)

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		b.logger.Debug(ctx, "discarding superseded push status result", "server", cfg.Name)
		return b.copySnapshot()
	}
	b.cancel = nil
	b.snap.Loading = false

	if err != nil {
		b.logger.Warn(ctx, "push status load failed", "server", cfg.Name, "error", err)
		b.snap.Entries = nil
		b.snap.Err = err
		b.snap.ErrorMessage = pushstatus.Describe(err)
		return b.copySnapshot()
	}

	b.snap.Entries = entries
	b.snap.Err = nil
	b.snap.ErrorMessage = ""
	b.snap.LastUpdated = b.now()
	return b.copySnapshot()
}

func (b *StatusBoard) Snapshot() StatusSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.copySnapshot()
}

// Reset cancels any load in flight and clears the board.
func (b *StatusBoard) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.gen++
	b.snap = StatusSnapshot{}
}

// copySnapshot must be called with mu held.
func (b *StatusBoard) copySnapshot() StatusSnapshot {
	s := b.snap
	s.Entries = append([]models.PushStatusEntry(nil), b.snap.Entries...)
	return s
}
