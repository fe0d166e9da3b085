package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching serialized values
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SearchKey generates a cache key for an evidence search. The result cap is
// part of the key so raising --max-results does not serve a truncated set.
func SearchKey(query string, maxResults int) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", maxResults, query)))
	return "claimlens:v1:search:" + hex.EncodeToString(hash[:])
}
