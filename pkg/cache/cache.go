// Package cache stores rendered figures between serve-mode requests.
//
// Keys are derived from the canonical option encoding plus a stamp of
// the input data, so a changed file or a changed flag set never serves
// a stale figure. Three backends cover the deployment shapes:
//   - memory: TTL-aware map, the serve-mode default
//   - file: JSON entries under a directory, survives restarts
//   - redis: shared cache for multi-instance deployments
//
// Backends are selected by a spec string: "memory" (or empty), "off",
// "dir:PATH", or a redis:// URL.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/binoviz/bino/pkg/errors"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The second result reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Open selects a backend from its spec string.
func Open(ctx context.Context, spec string) (Cache, error) {
	switch {
	case spec == "" || spec == "memory":
		return NewMemoryCache(), nil
	case spec == "off" || spec == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(spec, "dir:"):
		return NewFileCache(strings.TrimPrefix(spec, "dir:"))
	case strings.HasPrefix(spec, "redis://") || strings.HasPrefix(spec, "rediss://"):
		return NewRedisCache(ctx, spec)
	}
	return nil, errors.New(errors.ErrCodeInvalidFlag,
		"unknown cache backend %q, use memory, off, dir:PATH or redis://", spec)
}
