package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/sashko-guz/bucketlist/internal/logger"
)

// perKeyOverhead approximates the slice header cost of one cached key
const perKeyOverhead = 16

// MemoryCache holds recent bucket listings in memory with TTL expiry
type MemoryCache struct {
	cache *ristretto.Cache
	name  string
}

// MemoryCacheConfig defines configuration for the memory cache
type MemoryCacheConfig struct {
	Name     string        // Cache name for logging
	MaxSize  int64         // Max memory in bytes
	MaxItems int64         // Max number of listings (optional)
	TTL      time.Duration // Default time to live for entries
}

// NewMemoryCache creates a new in-memory listing cache
func NewMemoryCache(cfg MemoryCacheConfig) (*MemoryCache, error) {
	if cfg.MaxSize <= 0 {
		return nil, fmt.Errorf("MaxSize must be specified for memory cache")
	}

	if cfg.MaxItems == 0 {
		// Listings are few and large; a handful of buckets/prefixes at most
		cfg.MaxItems = 100
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.MaxItems * 10, // Number of keys to track frequency (10x expected items)
		MaxCost:     cfg.MaxSize,
		BufferItems: 64,
		Metrics:     true,
		OnEvict: func(item *ristretto.Item) {
			logger.Debugf("[MemoryCache:%s] Evicted listing (cost: %d bytes)", cfg.Name, item.Cost)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	logger.Infof("[MemoryCache:%s] Initialized: MaxSize=%dMB, MaxItems=%d, TTL=%s",
		cfg.Name, cfg.MaxSize/(1024*1024), cfg.MaxItems, cfg.TTL)

	return &MemoryCache{
		cache: cache,
		name:  cfg.Name,
	}, nil
}

// Get returns a copy of the cached listing, if present
func (mc *MemoryCache) Get(key string) ([]string, bool) {
	value, found := mc.cache.Get(key)
	if !found {
		return nil, false
	}

	keys, ok := value.([]string)
	if !ok {
		logger.Warnf("[MemoryCache:%s] Invalid data type for key: %s", mc.name, key)
		return nil, false
	}

	return append([]string(nil), keys...), true
}

// Set stores a copy of the listing with the given TTL.
// Returns false if ristretto rejected or dropped the write.
func (mc *MemoryCache) Set(key string, keys []string, ttl time.Duration) bool {
	stored := append(make([]string, 0, len(keys)), keys...)

	if !mc.cache.SetWithTTL(key, stored, listingCost(stored), ttl) {
		logger.Warnf("[MemoryCache:%s] Failed to set key %s (buffer full or rejected)", mc.name, key)
		return false
	}
	return true
}

func (mc *MemoryCache) Delete(key string) {
	mc.cache.Del(key)
}

func (mc *MemoryCache) Clear() {
	mc.cache.Clear()
	logger.Infof("[MemoryCache:%s] Cache cleared", mc.name)
}

// Wait blocks until all pending writes are applied
func (mc *MemoryCache) Wait() {
	mc.cache.Wait()
}

// GetStats returns formatted cache statistics
func (mc *MemoryCache) GetStats() map[string]any {
	metrics := mc.cache.Metrics

	hits := metrics.Hits()
	misses := metrics.Misses()
	total := hits + misses

	var hitRatio float64
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return map[string]any{
		"name":         mc.name,
		"hits":         hits,
		"misses":       misses,
		"hit_ratio":    hitRatio,
		"keys_added":   metrics.KeysAdded(),
		"keys_evicted": metrics.KeysEvicted(),
		"cost_added":   metrics.CostAdded(),
	}
}

func (mc *MemoryCache) Close() {
	mc.cache.Close()
}

func listingCost(keys []string) int64 {
	cost := int64(1)
	for _, k := range keys {
		cost += int64(len(k)) + perKeyOverhead
	}
	return cost
}
