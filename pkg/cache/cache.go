// Package cache memoises built snapshot URLs so repeated requests for the
// same viewport and overlays skip the builder.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Defaults used when the configured values are not positive.
const (
	DefaultSize = 256
	DefaultTTL  = 5 * time.Minute
)

// URLCache is a thread-safe size-bounded cache with time-based expiration.
type URLCache struct {
	lru *expirable.LRU[string, string]
}

// NewURLCache creates a cache holding at most size URLs for ttl each.
func NewURLCache(size int, ttl time.Duration) *URLCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &URLCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// Get returns the cached URL for key.
func (c *URLCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

// Set stores url under key, evicting the least recently used entry when full.
func (c *URLCache) Set(key, url string) {
	c.lru.Add(key, url)
}

// Len returns the number of cached URLs, expired ones included until they
// are purged.
func (c *URLCache) Len() int {
	return c.lru.Len()
}

// Clear removes every entry.
func (c *URLCache) Clear() {
	c.lru.Purge()
}

// Key returns a stable digest of v's JSON encoding. Map keys are sorted by
// encoding/json, so equal requests produce equal keys.
func Key(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
