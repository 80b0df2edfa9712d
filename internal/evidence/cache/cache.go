// Package cache keeps recent provider lookups so repeated submissions of the
// same identifier do not hit the provider again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"idverify/internal/evidence/providers"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache stores lookup results by key.
type Cache interface {
	Get(ctx context.Context, key string) (*providers.LookupResult, error)
	Set(ctx context.Context, key string, result *providers.LookupResult, ttl time.Duration) error
}

const keyPrefix = "idverify:lookup:"

// Key builds the cache key for a lookup. The identifier is hashed so raw ID
// numbers never reach the cache.
func Key(providerID string, req providers.LookupRequest) string {
	sum := sha256.Sum256([]byte(req.IDNumber))
	return keyPrefix + providerID + ":" + string(req.Type) + ":" + hex.EncodeToString(sum[:])
}
