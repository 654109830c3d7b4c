package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/parsepush/internal/catalog"
	"github.com/dmitrijs2005/parsepush/internal/models"
)

// clearSecret is typed at the edit prompt to remove a stored key.
const clearSecret = "-"

var errNoServer = errors.New("no such server")

func (a *App) serverAt(n int) (models.ServerConfiguration, error) {
	cfg, err := a.store.At(n - 1)
	if errors.Is(err, catalog.ErrIndexOutOfRange) {
		return cfg, fmt.Errorf("%w: %d", errNoServer, n)
	}
	return cfg, err
}

func (a *App) List(ctx context.Context) error {
	list := a.store.List()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No servers configured. Use 'add' to create one.")
		return nil
	}

	for i, cfg := range list {
		key := "no key"
		if _, ok := a.store.SecretFor(ctx, cfg); ok {
			key = "key stored"
		}
		fmt.Fprintf(a.out, "%d. %s  %s  (app %s, %s)\n", i+1, cfg.Name, cfg.ServerURL, cfg.AppID, key)
	}
	return nil
}

func (a *App) secretPrompt() string {
	if a.config.RequireSecret {
		return "API key"
	}
	return "API key (optional)"
}

func (a *App) Add(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	serverURL, err := GetSimpleText(a.reader, "Server URL", a.out)
	if err != nil {
		return err
	}
	appID, err := GetSimpleText(a.reader, "App ID", a.out)
	if err != nil {
		return err
	}
	secret, err := GetSecret(a.reader, a.secretPrompt(), a.out)
	if err != nil {
		return err
	}

	cfg := models.NewServerConfiguration(name, serverURL, appID)
	if err := a.store.Add(ctx, cfg, secret); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %s.\n", cfg.Name)
	return nil
}

// Edit asks for every field with the current value as default. At the key
// prompt an empty answer keeps the stored key and "-" removes it.
func (a *App) Edit(ctx context.Context, n int) error {
	cfg, err := a.serverAt(n)
	if err != nil {
		return err
	}

	name, err := GetDefaultText(a.reader, "Name", cfg.Name, a.out)
	if err != nil {
		return err
	}
	serverURL, err := GetDefaultText(a.reader, "Server URL", cfg.ServerURL, a.out)
	if err != nil {
		return err
	}
	appID, err := GetDefaultText(a.reader, "App ID", cfg.AppID, a.out)
	if err != nil {
		return err
	}

	current, hasSecret := a.store.SecretFor(ctx, cfg)
	prompt := a.secretPrompt()
	if hasSecret {
		prompt += ", Enter keeps the stored key, '-' removes it"
	}
	secret, err := GetSecret(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	switch secret {
	case "":
		secret = current
	case clearSecret:
		secret = ""
	}

	updated := cfg.WithInput(name, serverURL, appID)
	if err := a.store.Update(ctx, updated, secret); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Updated %s.\n", updated.Name)
	return nil
}

// Remove deletes the servers with the given numbers. Nothing is removed when
// any number is out of range.
func (a *App) Remove(ctx context.Context, ns []int) error {
	ids := make([]uuid.UUID, 0, len(ns))
	seen := make(map[uuid.UUID]struct{}, len(ns))
	for _, n := range ns {
		cfg, err := a.serverAt(n)
		if err != nil {
			return err
		}
		if _, dup := seen[cfg.ID]; dup {
			continue
		}
		seen[cfg.ID] = struct{}{}
		ids = append(ids, cfg.ID)
	}

	a.store.Delete(ctx, ids)
	if _, shown := seen[a.board.Snapshot().ConfigurationID]; shown {
		a.board.Reset()
	}

	fmt.Fprintf(a.out, "Removed %d server(s).\n", len(ids))
	return nil
}

// Move puts server from at position to; the others keep their order.
func (a *App) Move(ctx context.Context, from, to int) error {
	if _, err := a.serverAt(from); err != nil {
		return err
	}
	if _, err := a.serverAt(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	destination := to - 1
	if to > from {
		destination = to
	}
	if err := a.store.Move(ctx, []int{from - 1}, destination); err != nil {
		return err
	}

	return a.List(ctx)
}
