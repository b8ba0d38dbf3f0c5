package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Cache defines the interface for caching operations
type Cache interface {
	// Get retrieves a value from the cache
	// Returns the value and a boolean indicating whether the key was found
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set adds a value to the cache with the specified expiration
	// If expiration is 0, the configured default TTL is used
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
}

// Predefined cache key prefixes
const (
	PrefixPricePreview      = "price_preview:v1:"
	PrefixBillingProjection = "billing_projection:v1:"
)

// canonical sorts map keys so equal inputs always hash to the same key
var canonical = jsoniter.Config{
	SortMapKeys:            true,
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// HashKey creates a cache key from the canonical JSON encoding of values.
// Two calls with deep-equal values produce the same key.
func HashKey(prefix string, values ...interface{}) (string, error) {
	h := sha256.New()
	for _, v := range values {
		b, err := canonical.Marshal(v)
		if err != nil {
			return "", err
		}
		h.Write(b)
		h.Write([]byte{0})
	}
	return prefix + hex.EncodeToString(h.Sum(nil)), nil
}
