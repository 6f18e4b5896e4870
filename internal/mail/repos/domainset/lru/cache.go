package lru

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/dispofilter/internal/mail/repos/domainset"
)

// verdictCache is an LRU-backed implementation of domainset.VerdictCache.
// It tracks basic metrics: hits, misses, and evictions.
type verdictCache struct {
	lru       *lru.Cache[string, bool]
	capacity  int
	hits      uint64
	misses    uint64
	evictions uint64
}

// disabledCache is a no-op VerdictCache used when size <= 0.
type disabledCache struct{}

// New creates a VerdictCache with the given capacity. If size <= 0, a
// disabled cache is returned that always misses and tracks no metrics.
func New(size int) (domainset.VerdictCache, error) {
	if size <= 0 {
		return &disabledCache{}, nil
	}

	vc := &verdictCache{capacity: size}
	// NewWithEvict observes evictions, including Purge-induced ones.
	cache, err := lru.NewWithEvict(size, func(_ string, _ bool) {
		vc.evictions++
	})
	if err != nil {
		return nil, err
	}
	vc.lru = cache
	return vc, nil
}

// Get looks up a verdict by name. When found, increments hits; otherwise increments misses.
func (c *verdictCache) Get(name string) (bool, bool) {
	if v, ok := c.lru.Get(name); ok {
		c.hits++
		return v, true
	}
	c.misses++
	return false, false
}

// Put stores a verdict by name.
func (c *verdictCache) Put(name string, disposable bool) {
	c.lru.Add(name, disposable)
}

// Len returns the number of entries in the cache.
func (c *verdictCache) Len() int { return c.lru.Len() }

// Purge clears all entries. Evictions are counted via the eviction callback.
func (c *verdictCache) Purge() { c.lru.Purge() }

func (c *verdictCache) Stats() domainset.CacheStats {
	return domainset.CacheStats{
		Capacity:  c.capacity,
		Size:      c.lru.Len(),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

func (d *disabledCache) Get(string) (bool, bool)     { return false, false }
func (d *disabledCache) Put(string, bool)            {}
func (d *disabledCache) Len() int                    { return 0 }
func (d *disabledCache) Purge()                      {}
func (d *disabledCache) Stats() domainset.CacheStats { return domainset.CacheStats{} }

var _ domainset.VerdictCache = (*verdictCache)(nil)
var _ domainset.VerdictCache = (*disabledCache)(nil)
