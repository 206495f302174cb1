// Package cache stores derived analysis results keyed by content hash.
//
// Analysis is deterministic for a given image, strokes payload and scorer,
// so a cached result is indistinguishable from a recomputed one. Backends:
//   - NullCache: never stores anything (caching disabled)
//   - FileCache: one JSON file per entry, for single-instance and CLI use
//   - RedisCache: shared cache for multi-instance deployments
//
// Keys are produced by a Keyer so that callers never build key strings by
// hand; ScopedKeyer adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Backend names accepted by configuration.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// TTLAnalysis is how long analysis results are kept.
const TTLAnalysis = 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// AnalysisKeyOpts identifies everything an analysis result depends on.
type AnalysisKeyOpts struct {
	ImageHash    string `json:"image"`
	StrokesHash  string `json:"strokes"`
	Scorer       string `json:"scorer"`
	MaxDimension int    `json:"max_dim"`
	MaxPixels    int    `json:"max_pixels"`
}

// Keyer builds cache keys.
type Keyer interface {
	AnalysisKey(opts AnalysisKeyOpts) string
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// AnalysisKey implements Keyer.
func (DefaultKeyer) AnalysisKey(opts AnalysisKeyOpts) string {
	return hashKey("analysis", opts)
}
