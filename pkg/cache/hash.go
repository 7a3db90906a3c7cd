package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ArtifactOpts are the render settings that change a rasterized artifact.
type ArtifactOpts struct {
	Backend string  `json:"backend"`
	Format  string  `json:"format"`
	Scale   float64 `json:"scale"`
}

// ArtifactKey returns the cache key for svg rendered with opts.
func ArtifactKey(svg []byte, opts ArtifactOpts) string {
	return hashKey("artifact", Hash(svg), opts)
}

// hashKey generates a cache key of the form prefix:sha256(parts...).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 of data as 64 hex characters.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
