// Package cache stores rendered overlay artifacts between CLI runs.
//
// Rendering a frame to PNG or PDF is the slow part of the pipeline, and
// stepping through a run re-renders the same frames many times. Artifacts are
// keyed by a hash of what the frame draws plus the render settings, so a
// changed snapshot or setting never returns a stale image.
//
// [FileCache] keeps entries as files under a directory; [NullCache] disables
// caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultTTL is how long a rendered artifact stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key and whether it was found and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts are the render settings an artifact depends on.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	TextCols int     `json:"cols,omitempty"`
	TextRows int     `json:"rows,omitempty"`
}

// ArtifactKey returns the key of the artifact rendered from the frame with
// hash frameHash.
func ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", frameHash, opts)
}

// hashKey generates a key of the form prefix:hash(parts...).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
