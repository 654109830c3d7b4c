// Package settings stores opaque blobs under string keys. It is the
// non-secret storage tier: the server catalog snapshot lives here.
package settings

import (
	"context"
)

// Repository is a key -> blob store. Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
