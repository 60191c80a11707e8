package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// entry holds a cached markup snapshot with its capture timestamp.
type entry struct {
	snapshot  string
	createdAt time.Time
}

// SnapshotCache is an in-memory cache of rendered markup snapshots keyed
// by target URL. It only short-circuits the browser fetch: extraction and
// store appends always re-run, so repeated scrapes of the same URL still
// accumulate distinct records. Safe for concurrent use.
type SnapshotCache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
}

// New creates a SnapshotCache with the given maximum number of entries.
// A background goroutine runs every 5 minutes to evict entries older
// than 1 hour.
func New(maxEntries int) *SnapshotCache {
	c := &SnapshotCache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
	}

	go c.cleanupLoop()
	return c
}

// Key derives the cache key for a target URL.
func Key(url string) string {
	h := sha256.Sum256([]byte(url))
	return hex.EncodeToString(h[:])
}

// Get retrieves a cached snapshot if it exists and is younger than maxAge.
// If maxAge <= 0, no lookup is performed.
func (c *SnapshotCache) Get(key string, maxAge time.Duration) (string, bool) {
	if maxAge <= 0 {
		return "", false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > maxAge {
		return "", false
	}
	return e.snapshot, true
}

// Set stores a snapshot. If the cache is at capacity, a random entry is
// evicted to make room (map iteration is random in Go).
func (c *SnapshotCache) Set(key, snapshot string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		snapshot:  snapshot,
		createdAt: time.Now(),
	}
}

// cleanupLoop evicts entries older than 1 hour every 5 minutes.
func (c *SnapshotCache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-1 * time.Hour)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
