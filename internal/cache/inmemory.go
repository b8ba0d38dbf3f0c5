package cache

import (
	"context"
	"time"

	"github.com/flexprice/offerpricing/internal/config"
	"github.com/flexprice/offerpricing/internal/logger"
	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is the default expiration time for cache entries
const DefaultExpiration = 5 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 10 * time.Minute

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache
type InMemoryCache struct {
	cache   *goCache.Cache
	enabled bool
	ttl     time.Duration
}

// NewInMemoryCache creates a new InMemoryCache instance from the cache config
func NewInMemoryCache(cfg *config.Configuration, log *logger.Logger) Cache {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	cleanup := cfg.Cache.CleanupInterval
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}

	log.Infow("initializing in-memory cache",
		"enabled", cfg.Cache.Enabled,
		"ttl", ttl.String(),
	)

	return &InMemoryCache{
		cache:   goCache.New(ttl, cleanup),
		enabled: cfg.Cache.Enabled,
		ttl:     ttl,
	}
}

// Get retrieves a value from the cache
func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	if !c.enabled {
		return nil, false
	}
	return c.cache.Get(key)
}

// Set adds a value to the cache with the specified expiration
func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	if !c.enabled {
		return
	}
	if expiration == 0 {
		expiration = c.ttl
	}
	c.cache.Set(key, value, expiration)
}

// ItemCount returns the number of cached entries, including expired ones not yet cleaned up
func (c *InMemoryCache) ItemCount() int {
	return c.cache.ItemCount()
}
