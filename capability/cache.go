package capability

import (
	"sync"
	"time"
)

// Cache is the process-wide store of detected profiles, keyed by
// target-service identity (endpoint plus API version).
//
// Reads are safe for any number of concurrent callers. Writes replace the
// profile atomically under the write lock, so a reader never observes a
// partially updated profile. Expiry is evaluated on read against the
// injectable clock; expired entries behave exactly like absent ones.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Profile
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the configured TTL and the wall clock.
func NewCache(cfg Config) *Cache {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultConfig().TTL
	}
	return &Cache{
		entries: make(map[string]Profile),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewCacheWithClock creates a cache with an explicit clock. Tests use this to
// drive expiry deterministically.
func NewCacheWithClock(cfg Config, now func() time.Time) *Cache {
	c := NewCache(cfg)
	c.now = now
	return c
}

// Get returns the cached profile for a service key. A profile past its TTL,
// or recorded against a different API version than the caller expects, is
// reported as absent.
func (c *Cache) Get(serviceKey, apiVersion string) (Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.entries[serviceKey]
	if !ok {
		return Profile{}, false
	}
	if c.now().Sub(p.DetectedAt) > c.ttl {
		return Profile{}, false
	}
	if apiVersion != "" && p.APIVersion != apiVersion {
		return Profile{}, false
	}
	return p, true
}

// Put stores a freshly detected profile, replacing any previous entry
// wholesale.
func (c *Cache) Put(serviceKey string, p Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[serviceKey] = p
}

// Invalidate drops the entry for a service key, forcing the next caller
// through detection.
func (c *Cache) Invalidate(serviceKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, serviceKey)
}

// TTL reports the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
