// Package cache provides a keyed JSON cache with per-entry TTL.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-serialized values under string keys. Entries expire
// after their TTL and are never explicitly invalidated.
type Cache interface {
	// GetJSON unmarshals the value at key into v. The boolean reports
	// whether the key was present.
	GetJSON(ctx context.Context, key string, v any) (bool, error)

	// SetJSON marshals v and stores it at key with the given TTL.
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}
