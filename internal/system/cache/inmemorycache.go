/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/salesflow/orderdesk/internal/system/log"
)

// inMemoryEntry is a cache entry together with its access bookkeeping.
type inMemoryEntry[T any] struct {
	CacheEntry[T]
	key         CacheKey
	accessCount int64
}

// inMemoryCache is a bounded, TTL aware cache kept in process memory.
// The access list holds the most recently used entry at the front.
type inMemoryCache[T any] struct {
	name           string
	entries        map[CacheKey]*list.Element
	accessOrder    *list.List
	size           int
	ttl            time.Duration
	evictionPolicy evictionPolicy
	now            func() time.Time
	hitCount       int64
	missCount      int64
	evictCount     int64
	mu             sync.Mutex
}

// newInMemoryCache creates a new in-memory cache.
func newInMemoryCache[T any](name string, size int, ttl time.Duration, policy evictionPolicy) *inMemoryCache[T] {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL * time.Second
	}

	log.GetLogger().With(log.String(log.LoggerKeyComponentName, "InMemoryCache"), log.String("name", name)).
		Debug("Initializing in-memory cache", log.String("evictionPolicy", string(policy)),
			log.Int("size", size), log.Duration("ttl", ttl))

	return &inMemoryCache[T]{
		name:           name,
		entries:        make(map[CacheKey]*list.Element),
		accessOrder:    list.New(),
		size:           size,
		ttl:            ttl,
		evictionPolicy: policy,
		now:            time.Now,
	}
}

// set adds or replaces an entry, evicting one entry when the cache grows past its size.
func (c *inMemoryCache[T]) set(key CacheKey, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiry := c.now().Add(c.ttl)
	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*inMemoryEntry[T])
		entry.Value = value
		entry.ExpiryTime = expiry
		entry.accessCount++
		c.accessOrder.MoveToFront(elem)
		return
	}

	entry := &inMemoryEntry[T]{
		CacheEntry:  CacheEntry[T]{Value: value, ExpiryTime: expiry},
		key:         key,
		accessCount: 1,
	}
	c.entries[key] = c.accessOrder.PushFront(entry)

	if len(c.entries) > c.size {
		c.evict()
	}
}

// get returns the live value stored for the key.
func (c *inMemoryCache[T]) get(key CacheKey) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.entries[key]
	if !ok {
		c.missCount++
		cacheLookups.WithLabelValues(c.name, "miss").Inc()
		return zero, false
	}

	entry := elem.Value.(*inMemoryEntry[T])
	if c.now().After(entry.ExpiryTime) {
		c.remove(elem)
		c.missCount++
		cacheLookups.WithLabelValues(c.name, "miss").Inc()
		return zero, false
	}

	entry.accessCount++
	c.accessOrder.MoveToFront(elem)
	c.hitCount++
	cacheLookups.WithLabelValues(c.name, "hit").Inc()
	return entry.Value, true
}

// delete removes the entry for the key, if any.
func (c *inMemoryCache[T]) delete(key CacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.remove(elem)
	}
}

// clear drops every entry and resets the statistics.
func (c *inMemoryCache[T]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[CacheKey]*list.Element)
	c.accessOrder.Init()
	c.hitCount, c.missCount, c.evictCount = 0, 0, 0
}

// cleanupExpired removes every expired entry and returns how many were removed.
func (c *inMemoryCache[T]) cleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	cleaned := 0
	for elem := c.accessOrder.Back(); elem != nil; {
		prev := elem.Prev()
		if now.After(elem.Value.(*inMemoryEntry[T]).ExpiryTime) {
			c.remove(elem)
			cleaned++
		}
		elem = prev
	}
	return cleaned
}

// stats returns a snapshot of the cache statistics.
func (c *inMemoryCache[T]) stats() CacheStat {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStat{
		Enabled:    true,
		Size:       len(c.entries),
		MaxSize:    c.size,
		HitCount:   c.hitCount,
		MissCount:  c.missCount,
		EvictCount: c.evictCount,
	}
}

// evict removes one entry according to the eviction policy. Callers hold the lock.
func (c *inMemoryCache[T]) evict() {
	victim := c.accessOrder.Back()
	if c.evictionPolicy == evictionPolicyLFU {
		// The entry just inserted sits at the front and is never chosen.
		for elem := victim; elem != nil && elem != c.accessOrder.Front(); elem = elem.Prev() {
			if elem.Value.(*inMemoryEntry[T]).accessCount < victim.Value.(*inMemoryEntry[T]).accessCount {
				victim = elem
			}
		}
	}
	if victim == nil {
		return
	}

	c.remove(victim)
	c.evictCount++
	cacheEvictions.WithLabelValues(c.name).Inc()
}

// remove unlinks an element from both the index and the access list. Callers hold the lock.
func (c *inMemoryCache[T]) remove(elem *list.Element) {
	delete(c.entries, elem.Value.(*inMemoryEntry[T]).key)
	c.accessOrder.Remove(elem)
}
