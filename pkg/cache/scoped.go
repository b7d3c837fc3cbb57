package cache

import (
	"context"
	"time"
)

// Scoped wraps a cache with a key prefix, so independent concerns
// (figures, dataset listings) share one backend without colliding.
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a prefixed view of inner. Closing the scoped view
// does not close the backend, which may be shared.
func NewScoped(inner Cache, prefix string) Cache {
	return &Scoped{inner: inner, prefix: prefix}
}

// Get retrieves a value under the prefixed key.
func (c *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set stores a value under the prefixed key.
func (c *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete removes the prefixed key.
func (c *Scoped) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close does nothing; the shared backend owns its lifecycle.
func (c *Scoped) Close() error {
	return nil
}

var _ Cache = (*Scoped)(nil)
