package cache

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"goldenorders/pkg/logger"
	"goldenorders/pkg/metric"
)

var _ Cache[string, int] = (*LRUCache[string, int])(nil)

// LRUCache is a bounded, mutex-guarded cache with optional per-entry TTL.
// Hits, misses and evictions are reported under the cache name. The eviction
// callback runs after the lock is released and may call back into the cache.
type LRUCache[K comparable, V any] struct {
	name     string
	capacity int
	log      logger.Logger
	metrics  metric.Cache

	mu        sync.Mutex
	items     map[K]*list.Element
	order     *list.List // front is most recently used
	onEvicted func(key K, value V)
}

type entry[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time
}

func (e *entry[K, V]) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

type eviction[K comparable, V any] struct {
	key    K
	value  V
	reason string
}

func NewLRUCache[K comparable, V any](
	name string,
	capacity int,
	log logger.Logger,
	metrics metric.Cache,
) (*LRUCache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache.NewLRUCache: capacity must be positive, got %d", capacity)
	}

	return &LRUCache[K, V]{
		name:     name,
		capacity: capacity,
		log:      log,
		metrics:  metrics,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}, nil
}

func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	var (
		zero    V
		evicted []eviction[K, V]
	)

	c.mu.Lock()
	elem, ok := c.items[key]
	if ok {
		e := elem.Value.(*entry[K, V])
		if !e.expired(time.Now()) {
			c.order.MoveToFront(elem)
			c.mu.Unlock()
			c.metrics.Lookup(c.name, true)
			return e.value, true
		}
		evicted = append(evicted, c.unlink(elem, "expired"))
	}
	c.mu.Unlock()

	c.metrics.Lookup(c.name, false)
	c.notify(evicted)
	return zero, false
}

func (c *LRUCache[K, V]) Put(key K, value V, ttl time.Duration) {
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}

	var evicted []eviction[K, V]

	c.mu.Lock()
	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry[K, V])
		e.value, e.expires = value, expires
		c.order.MoveToFront(elem)
	} else {
		for c.order.Len() >= c.capacity {
			evicted = append(evicted, c.unlink(c.order.Back(), "lru"))
		}
		c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, expires: expires})
	}
	size := c.order.Len()
	c.mu.Unlock()

	c.metrics.Size(c.name, size)
	c.notify(evicted)
}

// Remove drops key. It reports whether an entry was present.
func (c *LRUCache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	elem, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		return false
	}
	ev := c.unlink(elem, "removed")
	size := c.order.Len()
	c.mu.Unlock()

	c.metrics.Size(c.name, size)
	c.notify([]eviction[K, V]{ev})
	return true
}

func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRUCache[K, V]) SetOnEvicted(onEvicted func(key K, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvicted = onEvicted
}

// RunCleanup sweeps expired entries every interval until ctx is done.
func (c *LRUCache[K, V]) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.sweep(now)
		}
	}
}

func (c *LRUCache[K, V]) sweep(now time.Time) {
	var evicted []eviction[K, V]

	c.mu.Lock()
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry[K, V]).expired(now) {
			evicted = append(evicted, c.unlink(elem, "expired"))
		}
		elem = prev
	}
	size := c.order.Len()
	c.mu.Unlock()

	if len(evicted) == 0 {
		return
	}

	c.metrics.Size(c.name, size)
	c.notify(evicted)
	c.log.Debugw("cache sweep completed",
		"cache", c.name,
		"removed", len(evicted),
		"remaining", size,
	)
}

// unlink must be called with c.mu held.
func (c *LRUCache[K, V]) unlink(elem *list.Element, reason string) eviction[K, V] {
	e := c.order.Remove(elem).(*entry[K, V])
	delete(c.items, e.key)
	return eviction[K, V]{key: e.key, value: e.value, reason: reason}
}

func (c *LRUCache[K, V]) notify(evicted []eviction[K, V]) {
	if len(evicted) == 0 {
		return
	}

	c.mu.Lock()
	onEvicted := c.onEvicted
	c.mu.Unlock()

	for _, ev := range evicted {
		c.metrics.Eviction(c.name, ev.reason)
		if onEvicted != nil {
			onEvicted(ev.key, ev.value)
		}
	}
}
