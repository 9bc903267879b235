// Package cache provides the extraction result cache: repeated runs over the
// same document text are served from memory or disk instead of re-scanning.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching serialized extraction results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from document text. Identical text always maps to
// the same key regardless of where the document came from.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "grantsieve:v1:" + hex.EncodeToString(hash[:])
}
