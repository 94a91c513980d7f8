package cache

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps word results for the life of the process.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an in-memory store without expiration or janitor.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a word result
func (s *MemoryStore) Get(word string) (string, bool) {
	if val, found := s.cache.Get(word); found {
		return val.(string), true
	}
	return "", false
}

// Set stores a word result
func (s *MemoryStore) Set(word, result string) error {
	s.cache.Set(word, result, gocache.NoExpiration)
	return nil
}

// Clear removes every word result
func (s *MemoryStore) Clear() error {
	s.cache.Flush()
	return nil
}

// Len reports the number of cached words.
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}
