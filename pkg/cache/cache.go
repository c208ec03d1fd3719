// Package cache provides artifact caching for the loadicator pipeline.
//
// Rendering a chart is the only pipeline stage worth caching - the numeric
// computation itself is sub-millisecond - so cache entries are rendered
// artifact bytes keyed by the workbook content hash plus the loading
// condition and format. Backends:
//   - FileCache: on-disk cache for CLI usage
//   - MemoryCache: in-process cache for a single server instance
//   - RedisCache: shared cache for multi-instance deployments
//   - NullCache: caching disabled
//
// All backends implement the same [Cache] interface and may be swapped
// freely; the pipeline treats a miss and a backend error identically
// (recompute).
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the default lifetime of a cached artifact. Rendered charts
// are fully determined by their key, so the TTL exists only to bound cache
// growth.
const DefaultTTL = 24 * time.Hour

// Cache stores rendered artifact bytes by key.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any backend resources.
	Close() error
}
