// Package cache implements the bounded txid cache described in spec §4.8: a
// mapping from txid to an Owned transaction view, populated by callers on
// lookup miss. It is not internally synchronized; callers that share a
// TxCache across goroutines must serialize access themselves, matching
// tokenized-pkg/cacher's division of labor between the cache and its lock
// discipline.
package cache

import (
	"github.com/chainkit/slices/bitcoin"
	"github.com/chainkit/slices/slices"
)

// TxCache is a bounded txid -> Owned[Transaction] map. Eviction is
// insertion-order (oldest entry dropped first) once Capacity is exceeded;
// spec §4.8 notes eviction policy is not consensus-critical and any simple
// scheme is sufficient.
type TxCache struct {
	capacity int
	order    []bitcoin.Hash32
	entries  map[bitcoin.Hash32]slices.Owned[slices.Transaction]

	hits      uint64
	misses    uint64
	evictions uint64
}

// NewTxCache creates a cache that holds at most capacity transactions.
// A non-positive capacity is treated as 1.
func NewTxCache(capacity int) *TxCache {
	if capacity < 1 {
		capacity = 1
	}
	return &TxCache{
		capacity: capacity,
		entries:  make(map[bitcoin.Hash32]slices.Owned[slices.Transaction], capacity),
	}
}

// Get looks up a transaction by txid. The returned Owned value's lifetime is
// bounded by the cache's own lifetime; it is not removed on lookup.
func (c *TxCache) Get(txid bitcoin.Hash32) (slices.Owned[slices.Transaction], bool) {
	owned, ok := c.entries[txid]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return owned, ok
}

// Put inserts owned under its own TxID, evicting the oldest entry first if
// the cache is already at capacity. Re-inserting an existing txid does not
// change its eviction order.
func (c *TxCache) Put(owned slices.Owned[slices.Transaction]) {
	txid := owned.Value().TxID()

	if _, exists := c.entries[txid]; exists {
		c.entries[txid] = owned
		return
	}

	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}

	c.entries[txid] = owned
	c.order = append(c.order, txid)
}

func (c *TxCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
	c.evictions++
}

// Len returns the number of entries currently cached.
func (c *TxCache) Len() int { return len(c.entries) }

// Stats reports cumulative hit/miss/eviction counters, used by the periodic
// stats task in cmd/sliceinspect.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}

// Stats returns a snapshot of the cache's cumulative counters.
func (c *TxCache) Stats() Stats {
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.entries),
	}
}
