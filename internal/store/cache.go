package store

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedRenderer memoises rendered templates for a fixed TTL. Failures are not cached.
type CachedRenderer struct {
	inner Renderer
	cache *gocache.Cache
}

// NewCachedRenderer wraps inner with a cache. A non-positive ttl disables caching and returns inner.
func NewCachedRenderer(inner Renderer, ttl time.Duration) Renderer {
	if ttl <= 0 {
		return inner
	}
	return &CachedRenderer{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Render returns the cached content of name, rendering it through the wrapped Renderer on a miss.
func (c *CachedRenderer) Render(name string) (string, error) {
	if v, found := c.cache.Get(name); found {
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	content, err := c.inner.Render(name)
	if err != nil {
		return "", err
	}
	c.cache.SetDefault(name, content)
	return content, nil
}

// Flush drops every cached template.
func (c *CachedRenderer) Flush() {
	c.cache.Flush()
}
