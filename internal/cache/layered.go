package cache

// LayeredStore checks memory first and falls back to disk, promoting disk
// hits into memory.
type LayeredStore struct {
	memory Store
	disk   Store
}

// NewLayeredStore creates a memory-over-disk store.
func NewLayeredStore(memory, disk Store) *LayeredStore {
	return &LayeredStore{
		memory: memory,
		disk:   disk,
	}
}

// Get retrieves a word result (memory first, then disk)
func (s *LayeredStore) Get(word string) (string, bool) {
	if val, found := s.memory.Get(word); found {
		return val, true
	}

	if val, found := s.disk.Get(word); found {
		_ = s.memory.Set(word, val)
		return val, true
	}

	return "", false
}

// Set stores a word result in both layers. The memory layer is always
// written, even when the disk write fails.
func (s *LayeredStore) Set(word, result string) error {
	if err := s.memory.Set(word, result); err != nil {
		return err
	}
	return s.disk.Set(word, result)
}

// Clear removes all values from both layers
func (s *LayeredStore) Clear() error {
	if err := s.memory.Clear(); err != nil {
		return err
	}
	return s.disk.Clear()
}
