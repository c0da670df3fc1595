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

// Package cache provides named, configurable in-memory caches shared across the server.
package cache

import (
	"reflect"
	"sync"
	"time"

	"github.com/salesflow/orderdesk/internal/system/config"
	"github.com/salesflow/orderdesk/internal/system/log"
)

const loggerComponentName = "Cache"

// CacheInterface defines the common interface for cache operations.
type CacheInterface[T any] interface {
	GetName() string
	Set(key CacheKey, value T)
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey)
	Clear()
	IsEnabled() bool
	GetStats() CacheStat
}

// Cache implements CacheInterface on top of the configured cache backend.
// A disabled cache accepts every call and never returns a hit.
type Cache[T any] struct {
	name     string
	internal *inMemoryCache[T]
}

var (
	caches   = make(map[string]any)
	cachesMu sync.Mutex
)

// GetCache returns the process wide cache with the given name, creating it on first use.
// Caches are keyed by name and value type, so one name can back differently typed caches.
func GetCache[T any](cacheName string) CacheInterface[T] {
	var zero T
	registryKey := cacheName + ":" + reflect.TypeOf(&zero).Elem().String()

	cachesMu.Lock()
	defer cachesMu.Unlock()

	if existing, ok := caches[registryKey]; ok {
		return existing.(CacheInterface[T])
	}

	c := newCache[T](cacheName, config.GetServerRuntime().Config.Cache)
	caches[registryKey] = c
	return c
}

// resetCaches drops the cache registry. Used by tests only.
func resetCaches() {
	cachesMu.Lock()
	defer cachesMu.Unlock()
	caches = make(map[string]any)
}

// newCache builds a cache from the cache configuration and starts its expiry sweeper.
func newCache[T any](cacheName string, cacheConfig config.CacheConfig) *Cache[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String("cacheName", cacheName))

	if cacheConfig.Disabled {
		logger.Debug("Caching is disabled")
		return &Cache[T]{name: cacheName}
	}

	cacheProperty := getCacheProperty(cacheConfig, cacheName)
	if cacheProperty.Disabled {
		logger.Debug("Individual cache is disabled")
		return &Cache[T]{name: cacheName}
	}

	if getCacheType(cacheConfig) != cacheTypeInMemory {
		logger.Warn("Unknown cache type, defaulting to in-memory cache", log.String("type", cacheConfig.Type))
	}

	size := cacheProperty.Size
	if size <= 0 {
		size = cacheConfig.Size
	}
	ttl := cacheProperty.TTL
	if ttl <= 0 {
		ttl = cacheConfig.TTL
	}

	c := &Cache[T]{
		name: cacheName,
		internal: newInMemoryCache[T](cacheName, size, time.Duration(ttl)*time.Second,
			getEvictionPolicy(cacheConfig, cacheProperty)),
	}
	c.startCleanupRoutine(getCleanupInterval(cacheConfig))
	return c
}

// GetName returns the name of the cache.
func (c *Cache[T]) GetName() string {
	return c.name
}

// Set stores a value in the cache.
func (c *Cache[T]) Set(key CacheKey, value T) {
	if c.IsEnabled() {
		c.internal.set(key, value)
	}
}

// Get retrieves a value from the cache.
func (c *Cache[T]) Get(key CacheKey) (T, bool) {
	if c.IsEnabled() {
		return c.internal.get(key)
	}
	var zero T
	return zero, false
}

// Delete removes a value from the cache.
func (c *Cache[T]) Delete(key CacheKey) {
	if c.IsEnabled() {
		c.internal.delete(key)
	}
}

// Clear removes all entries in the cache.
func (c *Cache[T]) Clear() {
	if c.IsEnabled() {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
			log.String("cacheName", c.name)).Debug("Clearing all entries in the cache")
		c.internal.clear()
	}
}

// IsEnabled returns whether the cache is enabled.
func (c *Cache[T]) IsEnabled() bool {
	return c.internal != nil
}

// GetStats returns the cache statistics.
func (c *Cache[T]) GetStats() CacheStat {
	if !c.IsEnabled() {
		return CacheStat{}
	}
	return c.internal.stats()
}

// startCleanupRoutine periodically removes expired entries for the lifetime of the process.
func (c *Cache[T]) startCleanupRoutine(interval time.Duration) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String("cacheName", c.name))

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if cleaned := c.internal.cleanupExpired(); cleaned > 0 {
				logger.Debug("Expired cache entries cleaned", log.Int("count", cleaned))
			}
		}
	}()

	logger.Debug("Cache cleanup routine started", log.Duration("interval", interval))
}

// getCacheType retrieves the cache type from the configuration.
func getCacheType(cacheConfig config.CacheConfig) cacheType {
	if cacheConfig.Type == "" {
		return cacheTypeInMemory
	}
	return cacheType(cacheConfig.Type)
}

// getCacheProperty retrieves the cache property for the specified cache name.
func getCacheProperty(cacheConfig config.CacheConfig, cacheName string) config.CacheProperty {
	for _, property := range cacheConfig.Properties {
		if property.Name == cacheName {
			return property
		}
	}
	return config.CacheProperty{}
}

// getEvictionPolicy retrieves the eviction policy, the cache property taking precedence.
func getEvictionPolicy(cacheConfig config.CacheConfig, cacheProperty config.CacheProperty) evictionPolicy {
	policy := cacheProperty.EvictionPolicy
	if policy == "" {
		policy = cacheConfig.EvictionPolicy
	}

	switch evictionPolicy(policy) {
	case "", evictionPolicyLRU:
		return evictionPolicyLRU
	case evictionPolicyLFU:
		return evictionPolicyLFU
	default:
		log.GetLogger().Warn("Unknown eviction policy, defaulting to LRU", log.String("policy", policy))
		return evictionPolicyLRU
	}
}

// getCleanupInterval retrieves the expired entry sweep interval from the cache configuration.
func getCleanupInterval(cacheConfig config.CacheConfig) time.Duration {
	interval := cacheConfig.CleanupInterval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	return time.Duration(interval) * time.Second
}
