package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskStore persists word results as one JSON file per word so that a long
// corpus run can be resumed.
type DiskStore struct {
	dir string
	ttl time.Duration
}

// NewDiskStore creates a disk store under dir. A zero ttl never expires.
func NewDiskStore(dir string, ttl time.Duration) *DiskStore {
	return &DiskStore{
		dir: dir,
		ttl: ttl,
	}
}

type diskEntry struct {
	Word      string    `json:"word"`
	Result    string    `json:"result"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves a word result from disk
func (s *DiskStore) Get(word string) (string, bool) {
	path := s.path(word)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", false
	}

	// Hash collision or a file written for another word
	if entry.Word != word {
		return "", false
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return "", false
	}

	return entry.Result, true
}

// Set writes a word result to disk
func (s *DiskStore) Set(word, result string) error {
	entry := diskEntry{
		Word:   word,
		Result: result,
	}
	if s.ttl > 0 {
		entry.ExpiresAt = time.Now().Add(s.ttl)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(s.path(word), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Clear removes all cached files
func (s *DiskStore) Clear() error {
	return os.RemoveAll(s.dir)
}

func (s *DiskStore) path(word string) string {
	return filepath.Join(s.dir, Key(word)+".json")
}
