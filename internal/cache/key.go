package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key derives the cache fingerprint for a (canonical source, prompt template)
// pair: SHA-256 over both strings joined with a NUL separator, hex encoded.
// The prompt is part of the key so the same code under two prompts never
// collides. Pure and deterministic.
func Key(canonical, prompt string) string {
	h := sha256.New()
	h.Write([]byte(canonical))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}
