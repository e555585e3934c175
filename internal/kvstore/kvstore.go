// Package kvstore provides the durable key-value storage used for account
// snapshots and the account registry.
package kvstore

import "context"

// Store is a string key-value store. A missing key is reported via the
// found flag, never as an error.
type Store interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set writes value under key, replacing any previous value. The write is
	// atomic for the key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection (no-op for memory).
	Close() error
}
