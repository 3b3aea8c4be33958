// Package cache implements the bounded, LRU-style evaluation cache shared
// by every search worker: a map from board position hash to the network's
// last verdict for that position, so repeated visits to the same position
// (common once the tree reaches one position through different move orders)
// skip the network entirely.
package cache

import (
	"container/list"
	"sync"
)

// EvalResult is what the network adapter produces for one position: a
// policy distribution over the 361 on-board vertices plus PASS, and the
// network's raw value in [-1,1] (the adapter maps it to a [0,1] winrate
// when it returns a result).
type EvalResult struct {
	Policy [362]float32
	Value  float32
}

type entry struct {
	hash   uint64
	result EvalResult
}

// Cache is a mutex-guarded map plus container/list for LRU order: a plain
// mutex over a small shared structure rather than a lock-free one.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	index    map[uint64]*list.Element
}

// New builds a cache holding at most capacity entries. capacity <= 0 is
// clamped to 1 so the cache is always usable.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[uint64]*list.Element, capacity),
	}
}

// SizeFor scales cache capacity to roughly 18x the playout limit, with a
// floor so small playout budgets still get a usable cache.
func SizeFor(maxPlayouts int) int {
	const factor = 18
	const floor = 50_000
	if n := maxPlayouts * factor; n > floor {
		return n
	}
	return floor
}

// Lookup returns the cached result for hash, if present, moving it to the
// most-recently-used end.
func (c *Cache) Lookup(hash uint64) (EvalResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[hash]
	if !ok {
		return EvalResult{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).result, true
}

// Insert records result under hash, evicting the least-recently-used entry
// if the cache is full. An existing entry for hash is left untouched
// (first writer wins; a repeated insert is ignored rather than refreshed).
func (c *Cache) Insert(hash uint64, result EvalResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.index[hash]; ok {
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.index, oldest.Value.(*entry).hash)
		}
	}
	el := c.order.PushFront(&entry{hash: hash, result: result})
	c.index[hash] = el
}

// Clear empties the cache, used between games.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.index = make(map[uint64]*list.Element, c.capacity)
}

// Len returns the current number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
