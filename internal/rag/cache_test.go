package rag

import (
	"context"
	"encoding/json"

	"videoinsight/internal/cache"
)

// memoryCache wraps the in-memory cache with a presence check for
// assertions.
type memoryCache struct {
	*cache.MemoryCache
}

func newMemoryCache() *memoryCache {
	return &memoryCache{cache.NewMemoryCache()}
}

func (c *memoryCache) has(key string) bool {
	var v json.RawMessage
	ok, err := c.GetJSON(context.Background(), key, &v)
	return err == nil && ok
}
