package storage

import (
	"context"
	"time"

	"github.com/sashko-guz/bucketlist/internal/cache"
	"github.com/sashko-guz/bucketlist/internal/logger"
)

// CachedLister serves listings from memory for ttl before asking the
// underlying Lister again. Failed listings are never cached.
type CachedLister struct {
	underlying  Lister
	memoryCache *cache.MemoryCache
	cacheKey    string
	ttl         time.Duration
}

// NewCachedLister wraps underlying with a memory cache of maxSize bytes.
// A non-positive ttl disables caching and returns underlying unchanged.
func NewCachedLister(underlying Lister, bucket string, ttl time.Duration, maxSize int64) (Lister, error) {
	if ttl <= 0 {
		return underlying, nil
	}

	memCache, err := cache.NewMemoryCache(cache.MemoryCacheConfig{
		Name:    bucket,
		MaxSize: maxSize,
		TTL:     ttl,
	})
	if err != nil {
		return nil, err
	}

	return &CachedLister{
		underlying:  underlying,
		memoryCache: memCache,
		cacheKey:    "listing:" + bucket,
		ttl:         ttl,
	}, nil
}

func (cl *CachedLister) ListObjectKeys(ctx context.Context) ([]string, error) {
	if keys, found := cl.memoryCache.Get(cl.cacheKey); found {
		logger.Debugf("[CachedLister] Memory cache HIT: %s (%d keys)", cl.cacheKey, len(keys))
		return keys, nil
	}

	logger.Debugf("[CachedLister] Cache miss, listing from underlying storage: %s", cl.cacheKey)
	keys, err := cl.underlying.ListObjectKeys(ctx)
	if err != nil {
		return nil, err
	}

	cl.memoryCache.Set(cl.cacheKey, keys, cl.ttl)
	return keys, nil
}

// Invalidate drops the cached listing so the next call hits storage
func (cl *CachedLister) Invalidate() {
	cl.memoryCache.Delete(cl.cacheKey)
}

func (cl *CachedLister) Stats() map[string]any {
	return cl.memoryCache.GetStats()
}

// Close releases cache resources
func (cl *CachedLister) Close() error {
	cl.memoryCache.Wait()
	cl.memoryCache.Close()
	return nil
}
