// Package identity derives stable content identifiers from filesystem paths.
package identity

import (
	"encoding/hex"
	"log/slog"

	"golang.org/x/crypto/blake2b"
)

// DefaultKey is used when no hash key is configured. Deployments should set
// their own key: hashes are only unique per key, and a shared default lets
// identifiers be reproduced across instances.
const DefaultKey = "d3f4ulT-CHANGE-THIS!!BACKUP_IF_NO_.EVN"

// digestSize is the MAC output length in bytes (32 hex chars).
const digestSize = 16

// Hasher computes keyed hashes of path strings. Hashes are deterministic for
// a given (key, path) pair and are the sole identifier correlating filesystem
// entities to persisted rows. The hash covers the literal path string, not
// file contents.
type Hasher struct {
	key []byte
}

// NewHasher creates a Hasher with the given key. An empty key falls back to
// DefaultKey and logs a warning.
func NewHasher(key string, logger *slog.Logger) *Hasher {
	if logger == nil {
		logger = slog.Default()
	}
	if key == "" {
		logger.Warn("hash key is not set, using built-in default; set identity.hash_key or FILMHAUS_HASH_KEY")
		key = DefaultKey
	}
	// blake2b rejects keys longer than 64 bytes.
	if len(key) > 64 {
		key = key[:64]
	}
	return &Hasher{key: []byte(key)}
}

// Hash returns the hex digest for a path string.
func (h *Hasher) Hash(path string) string {
	mac, err := blake2b.New(digestSize, h.key)
	if err != nil {
		// Unreachable: key length is clamped in NewHasher. Degrade to an
		// unkeyed digest rather than panic mid-sync.
		sum := blake2b.Sum256([]byte(path))
		return hex.EncodeToString(sum[:digestSize])
	}
	mac.Write([]byte(path))
	return hex.EncodeToString(mac.Sum(nil))
}
