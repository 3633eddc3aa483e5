package planning

import (
	"fmt"
	"sync"
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/mitchellh/hashstructure/v2"
)

// ProjectionCache memoizes projection results behind an explicit, bounded
// store keyed by a hash of the inputs. It exists so the service layer can
// avoid recomputing identical projections without smuggling mutable global
// state into the engine; the engine itself never touches it.
type ProjectionCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[uint64]projectionEntry
}

type projectionEntry struct {
	points   []domain.ProjectionPoint
	storedAt time.Time
}

// NewProjectionCache creates a cache whose entries expire after ttl and whose
// size never exceeds maxEntries.
func NewProjectionCache(ttl time.Duration, maxEntries int) *ProjectionCache {
	if maxEntries <= 0 {
		maxEntries = 128
	}
	return &ProjectionCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[uint64]projectionEntry),
	}
}

// CacheKey hashes an arbitrary input struct into a cache key.
func CacheKey(inputs any) (uint64, error) {
	key, err := hashstructure.Hash(inputs, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to hash projection inputs: %w", err)
	}
	return key, nil
}

// Get returns the cached points for key, if present and not expired at now.
// The result is a copy; callers may mutate it without corrupting later hits.
func (c *ProjectionCache) Get(key uint64, now time.Time) ([]domain.ProjectionPoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if now.Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	points := make([]domain.ProjectionPoint, len(e.points))
	copy(points, e.points)
	return points, true
}

// Put stores points under key, evicting expired then oldest entries to stay
// within the size bound.
func (c *ProjectionCache) Put(key uint64, points []domain.ProjectionPoint, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = projectionEntry{points: points, storedAt: now}
}

func (c *ProjectionCache) evictLocked(now time.Time) {
	for k, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.entries, k)
		}
	}
	for len(c.entries) >= c.maxEntries {
		var oldestKey uint64
		oldest := now.Add(time.Hour)
		for k, e := range c.entries {
			if e.storedAt.Before(oldest) {
				oldest = e.storedAt
				oldestKey = k
			}
		}
		delete(c.entries, oldestKey)
	}
}
