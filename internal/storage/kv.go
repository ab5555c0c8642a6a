package storage

import "context"

// KV is the durable key-value persistence the Local Session Store is built on.
// Values are opaque strings; callers serialize.
type KV interface {
	// Get returns ErrNotFound when key has no value.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes the keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
