// Package vault is the restrictive storage tier for secret credentials.
//
// A vault is scoped to one service namespace and maps a key (the owning
// configuration's ID) to an opaque secret string. Reading a missing key is
// not an error: it reports ok=false.
package vault

import (
	"context"
	"errors"
)

// DefaultService is the namespace used when none is configured.
const DefaultService = "com.parsepushhelper.apikey"

var (
	ErrWrongPassphrase = errors.New("vault: wrong passphrase")
	ErrEmptyPassphrase = errors.New("vault: passphrase must not be empty")
	ErrCorrupted       = errors.New("vault: stored secret cannot be decrypted")
)

type Vault interface {
	// Save replaces whatever is stored under key.
	Save(ctx context.Context, key, secret string) error
	Read(ctx context.Context, key string) (secret string, ok bool, err error)
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
	// Keys lists the stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
}
