package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryCache is a map-backed Cache for tests and local runs without Redis.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(entry.raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{raw: raw, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}
