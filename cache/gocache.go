package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// GoCache simple in-memory cache implementation using go-cache
type GoCache struct {
	cache *gocache.Cache
}

// NewGoCache creates a new GoCache instance
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// GetResult represents the result of a Get operation
type GetResult struct {
	Found       map[string][]byte // keys that were found in cache
	MissingKeys []string          // keys that were not found
}

// Get retrieves values for the given keys
func (gc *GoCache) Get(keys []string) GetResult {
	result := GetResult{
		Found:       make(map[string][]byte),
		MissingKeys: make([]string, 0),
	}

	for _, key := range keys {
		value, found := gc.cache.Get(key)
		if !found {
			result.MissingKeys = append(result.MissingKeys, key)
			continue
		}
		if data, ok := value.([]byte); ok {
			result.Found[key] = data
		} else {
			result.MissingKeys = append(result.MissingKeys, key)
		}
	}

	return result
}

// Set stores key-value pairs with the specified timeout.
// A zero timeout uses the cache's default expiration.
func (gc *GoCache) Set(data map[string][]byte, timeout time.Duration) {
	for key, value := range data {
		gc.cache.Set(key, value, timeout)
	}
}

// Delete removes items from cache by keys
func (gc *GoCache) Delete(keys []string) {
	for _, key := range keys {
		gc.cache.Delete(key)
	}
}

// Clear removes all items from cache
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

// ItemCount returns the number of items in cache
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}
