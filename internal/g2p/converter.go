// Package g2p converts Central Kurdish text in Arabic script to syllabified
// phonemic Latin.
//
// Each word goes through GEN (readings for the ambiguous و and ی plus the
// unwritten i), syllabification, pruning and EVAL, an Optimality Theory
// style weighted sum of constraint violations. Every reading within
// tolerance of the best penalty survives. Results are memoized per word.
package g2p

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ppiankov/kurdg2p/internal/cache"
	"github.com/ppiankov/kurdg2p/internal/model"
	"github.com/ppiankov/kurdg2p/internal/phoneme"
	"github.com/ppiankov/kurdg2p/internal/resources"
)

// Options control sentence conversion
type Options struct {
	// SingleOutput keeps only the best reading of each word. Otherwise all
	// selected readings are joined with phoneme.Separator.
	SingleOutput bool
	// MergeConjunction attaches a standalone و to the preceding word.
	MergeConjunction bool
	// ConvertNumbers spells out digits before conversion.
	ConvertNumbers bool
}

// DefaultOptions returns single output with conjunction merging
func DefaultOptions() Options {
	return Options{
		SingleOutput:     true,
		MergeConjunction: true,
	}
}

// Converter is the G2P service. It is safe for concurrent use; all
// goroutines share one Word Cache.
type Converter struct {
	loader *resources.Loader
	memo   *cache.Memo
	logger *slog.Logger

	once sync.Once
	gen  *Generator
	err  error
}

// NewConverter creates a converter. A nil loader selects the embedded
// tables, a nil store an in-memory Word Cache, a nil logger discards logs.
func NewConverter(loader *resources.Loader, store cache.Store, logger *slog.Logger) *Converter {
	if loader == nil {
		loader = resources.NewLoader(nil)
	}
	if store == nil {
		store = cache.NewMemoryStore()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Converter{
		loader: loader,
		memo:   cache.NewMemo(store, logger),
		logger: logger,
	}
}

// generator loads the reference tables on first use.
func (c *Converter) generator() (*Generator, error) {
	c.once.Do(func() {
		tables, err := c.loader.Load()
		if err != nil {
			c.err = fmt.Errorf("load reference tables: %w", err)
			return
		}
		c.logger.Debug("reference tables loaded",
			"exceptions", len(tables.Exceptions),
			"certain", len(tables.Certain),
			"meters", len(tables.Meters))
		c.gen = NewGenerator(tables)
	})
	return c.gen, c.err
}

// Word converts one orthographic word. With single it returns the best
// reading, otherwise every selected reading joined by phoneme.Separator.
// An empty word, or a word with no surviving candidate, is returned as is.
func (c *Converter) Word(word string, single bool) (string, error) {
	gen, err := c.generator()
	if err != nil {
		return "", err
	}

	result := c.lookup(gen, word)
	if single {
		result, _, _ = strings.Cut(result, phoneme.Separator)
	}
	return result, nil
}

func (c *Converter) lookup(gen *Generator, word string) string {
	if word == "" {
		return ""
	}
	return c.memo.Do(word, func() string {
		return Select(word, Evaluate(gen.Generate(word)))
	})
}

// Explain returns every scored candidate of word with its violations.
// It bypasses the Word Cache.
func (c *Converter) Explain(word string) (*model.WordExplanation, error) {
	gen, err := c.generator()
	if err != nil {
		return nil, err
	}

	scored := Evaluate(gen.Generate(word))
	return &model.WordExplanation{
		Word:       word,
		Result:     Select(word, scored),
		Candidates: scored,
	}, nil
}

// Reset empties the Word Cache.
func (c *Converter) Reset() error {
	return c.memo.Reset()
}
