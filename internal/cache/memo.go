package cache

import (
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// Memo computes each word's result at most once per process, even when the
// same word is requested from many goroutines at the same time.
type Memo struct {
	store  Store
	group  singleflight.Group
	logger *slog.Logger
}

// NewMemo wraps store. A nil logger discards persistence warnings.
func NewMemo(store Store, logger *slog.Logger) *Memo {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Memo{store: store, logger: logger}
}

// Do returns the cached result for word, calling compute on a miss.
func (m *Memo) Do(word string, compute func() string) string {
	if val, found := m.store.Get(word); found {
		return val
	}

	v, _, _ := m.group.Do(word, func() (any, error) {
		// A flight that finished between Get and Do has already stored it.
		if val, found := m.store.Get(word); found {
			return val, nil
		}

		result := compute()
		if err := m.store.Set(word, result); err != nil {
			m.logger.Warn("word cache write failed", "word", word, "error", err)
		}
		return result, nil
	})

	return v.(string)
}

// Reset drops every cached result.
func (m *Memo) Reset() error {
	return m.store.Clear()
}
