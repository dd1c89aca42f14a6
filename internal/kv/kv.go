// Package kv provides the persistence collaborator consumed by the bookmark
// store: an opaque key-value byte store with get/put semantics and no schema
// beyond string key to string value.
package kv

import "context"

// Store defines the key-value interface for persisting blobs.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key has never been written.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put writes the value for key, replacing any prior value.
	Put(ctx context.Context, key, value string) error
}
