package cache

import (
	"fmt"
	"sync"
	"time"
)

// HouseholdCache caches computed values keyed by household and period.
// Invalidation is per household: any mutation that can change a
// household's totals bumps that household's generation, which orphans
// every cached entry for it at once. Orphaned entries age out via the
// LRU's TTL and size bound.
type HouseholdCache[T any] struct {
	lru  *LRU[T]
	mu   sync.Mutex
	gens map[uint]uint64
}

// NewHouseholdCache creates a household-scoped cache.
func NewHouseholdCache[T any](maxSize int, ttl time.Duration) *HouseholdCache[T] {
	return &HouseholdCache[T]{
		lru:  NewLRU[T](maxSize, ttl),
		gens: make(map[uint]uint64),
	}
}

func (c *HouseholdCache[T]) key(householdID uint, suffix string) string {
	c.mu.Lock()
	gen := c.gens[householdID]
	c.mu.Unlock()
	return fmt.Sprintf("h%d:g%d:%s", householdID, gen, suffix)
}

// Get retrieves the cached value for a household and key suffix.
func (c *HouseholdCache[T]) Get(householdID uint, suffix string) (T, bool) {
	return c.lru.Get(c.key(householdID, suffix))
}

// Set stores a value for a household and key suffix.
func (c *HouseholdCache[T]) Set(householdID uint, suffix string, data T) {
	c.lru.Set(c.key(householdID, suffix), data)
}

// InvalidateHousehold drops every cached entry for the household.
func (c *HouseholdCache[T]) InvalidateHousehold(householdID uint) {
	c.mu.Lock()
	c.gens[householdID]++
	c.mu.Unlock()
}
