// Package cache provides content-addressed caching for built lexicon graphs.
//
// Building a trie from a large manifest is cheap but not free, and the CLI
// runs as short-lived processes, so built graphs are cached on disk keyed by
// a hash of the manifest bytes. Two backends are provided:
//   - FileCache: directory-based storage for CLI usage
//   - NullCache: no-op backend for tests or --no-cache runs
//
// Keys are generated through the Keyer interface so that callers never
// assemble key strings by hand.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache storage backends.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns the data and true on a hit, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GraphKeyOpts captures the build options that affect a cached graph.
// Different options must produce different keys.
type GraphKeyOpts struct {
	Format string // manifest format: "toml" or "yaml"
}

// Keyer generates cache keys for the different payload types.
type Keyer interface {
	// GraphKey generates a key for a built lexicon graph, from a hash of the
	// manifest bytes and the build options.
	GraphKey(manifestHash string, opts GraphKeyOpts) string
}

// DefaultKeyer is the standard key generation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// GraphKey generates a key of the form "graph:<sha256>".
func (k *DefaultKeyer) GraphKey(manifestHash string, opts GraphKeyOpts) string {
	return hashKey("graph", manifestHash, opts.Format)
}
