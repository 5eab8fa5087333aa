package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/nikpau/sr-gen/pkg/config"
)

// RunKey derives the cache key for a generation run from the full
// parameter set. Two runs share a key only if every parameter matches,
// seed included, which is exactly when their output is identical.
func RunKey(p config.Parameters) string {
	data, _ := json.Marshal(p)
	return fmt.Sprintf("run:%s", Hash(data))
}

// Hash computes the full SHA-256 hex digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
