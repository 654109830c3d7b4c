// Package catalog keeps the user-ordered list of server configurations and
// persists it as one JSON snapshot in the settings tier.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/parsepush/internal/logging"
	"github.com/dmitrijs2005/parsepush/internal/models"
	"github.com/dmitrijs2005/parsepush/internal/repositories/settings"
)

// SnapshotKey is the settings key holding the serialized list.
const SnapshotKey = "parseServerConfigurations"

var ErrIndexOutOfRange = errors.New("catalog: index out of range")

// Catalog is the in-memory, authoritative list. Every mutation updates memory
// first and then writes the whole snapshot; a failed write is returned but
// does not roll the memory back. A Catalog has a single owner and is not
// safe for concurrent mutation.
type Catalog struct {
	repo   settings.Repository
	logger logging.Logger
	items  []models.ServerConfiguration
}

// New loads the persisted snapshot once. A missing or unreadable snapshot
// gives an empty catalog.
func New(ctx context.Context, repo settings.Repository, logger logging.Logger) *Catalog {
	c := &Catalog{repo: repo, logger: logger}
	c.Reload(ctx)
	return c
}

// Reload replaces the in-memory list with the persisted snapshot.
func (c *Catalog) Reload(ctx context.Context) {
	c.items = nil

	blob, err := c.repo.Get(ctx, SnapshotKey)
	if err != nil {
		c.logger.Error(ctx, "failed to read server catalog", "error", err)
		return
	}
	if len(blob) == 0 {
		return
	}

	var items []models.ServerConfiguration
	if err := json.Unmarshal(blob, &items); err != nil {
		c.logger.Warn(ctx, "ignoring corrupt server catalog", "error", err)
		return
	}
	c.items = items
}

// List returns a copy of the configurations in user order.
func (c *Catalog) List() []models.ServerConfiguration {
	out := make([]models.ServerConfiguration, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) Get(id uuid.UUID) (models.ServerConfiguration, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return models.ServerConfiguration{}, false
}

// At returns the configuration at a zero-based position.
func (c *Catalog) At(i int) (models.ServerConfiguration, error) {
	if i < 0 || i >= len(c.items) {
		return models.ServerConfiguration{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return c.items[i], nil
}

func (c *Catalog) indexOf(id uuid.UUID) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) Append(ctx context.Context, cfg models.ServerConfiguration) error {
	c.items = append(c.items, cfg)
	return c.Persist(ctx)
}

// Replace swaps the record with the same ID in place. found is false, and
// nothing is written, when no such record exists.
func (c *Catalog) Replace(ctx context.Context, cfg models.ServerConfiguration) (bool, error) {
	i := c.indexOf(cfg.ID)
	if i < 0 {
		return false, nil
	}
	c.items[i] = cfg
	return true, c.Persist(ctx)
}

// RemoveAll drops every record whose ID is listed and reports which IDs were
// actually removed. An empty ids slice is a no-op.
func (c *Catalog) RemoveAll(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	var removed []uuid.UUID
	kept := c.items[:0]
	for _, item := range c.items {
		if _, ok := drop[item.ID]; ok {
			removed = append(removed, item.ID)
			continue
		}
		kept = append(kept, item)
	}
	if len(removed) == 0 {
		return nil, nil
	}
	c.items = kept

	return removed, c.Persist(ctx)
}

// Reorder moves the records at source positions so they end up, in their
// original relative order, just before the record that was at destination.
// destination == Len() moves them to the end. Out-of-range input changes
// nothing.
func (c *Catalog) Reorder(ctx context.Context, source []int, destination int) error {
	if len(source) == 0 {
		return nil
	}

	moved, err := move(c.items, source, destination)
	if err != nil {
		return err
	}
	c.items = moved
	return c.Persist(ctx)
}

func move[T any](items []T, source []int, destination int) ([]T, error) {
	n := len(items)
	if destination < 0 || destination > n {
		return nil, fmt.Errorf("%w: destination %d", ErrIndexOutOfRange, destination)
	}

	picked := make(map[int]struct{}, len(source))
	for _, i := range source {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: source %d", ErrIndexOutOfRange, i)
		}
		picked[i] = struct{}{}
	}

	indices := make([]int, 0, len(picked))
	for i := range picked {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	block := make([]T, 0, len(indices))
	rest := make([]T, 0, n-len(indices))
	shift := 0
	for i, item := range items {
		if _, ok := picked[i]; ok {
			block = append(block, item)
			if i < destination {
				shift++
			}
			continue
		}
		rest = append(rest, item)
	}

	at := destination - shift
	out := make([]T, 0, n)
	out = append(out, rest[:at]...)
	out = append(out, block...)
	out = append(out, rest[at:]...)
	return out, nil
}

// Persist writes the whole list as one snapshot.
func (c *Catalog) Persist(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []models.ServerConfiguration{}
	}

	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode server catalog: %w", err)
	}
	if err := c.repo.Set(ctx, SnapshotKey, blob); err != nil {
		return fmt.Errorf("persist server catalog: %w", err)
	}
	return nil
}
