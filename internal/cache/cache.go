// Package cache holds the Word Cache: a memo from orthographic word to its
// joined near-optimal readings, backed by memory and optionally by disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Store is a word result backend.
type Store interface {
	Get(word string) (string, bool)
	Set(word, result string) error
	Clear() error
}

// Key derives a filesystem-safe key for a word. The prefix is bumped whenever
// the reference tables or constraint weights change the output.
func Key(word string) string {
	hash := sha256.Sum256([]byte(word))
	return "kurdg2p:v1:" + hex.EncodeToString(hash[:])
}
