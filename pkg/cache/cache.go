// Package cache stores rendered artifacts keyed by the content they were
// rendered from.
//
// Rasterizing the same SVG twice with the same backend, format and scale
// always yields the same bytes, so [ArtifactKey] hashes exactly those inputs.
// Batches with a fixed seed therefore hit the cache on every rerun.
//
// [FileCache] is the on-disk implementation used by the CLI.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
