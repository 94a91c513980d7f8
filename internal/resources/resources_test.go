package resources

import (
	"errors"
	"sync"
	"testing"
	"testing/fstest"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	tables, err := NewLoader(nil).Load()
	require.NoError(t, err)

	assert.Len(t, tables.Meters, 27)
	assert.NotEmpty(t, tables.Exceptions)
	assert.NotEmpty(t, tables.Certain)
	assert.NotEmpty(t, tables.IPA)

	for i, m := range tables.Meters {
		for _, r := range m.Weights {
			if r != '–' && r != '∪' {
				t.Errorf("pattern %d (%s) has unexpected weight rune %q", i, m.Title, r)
			}
		}
		assert.NotEmpty(t, m.Title)
	}

	// Frequency ordering breaks score ties in favour of the commoner meter.
	for i := 1; i < len(tables.Meters); i++ {
		assert.GreaterOrEqual(t, tables.Meters[i-1].Freq, tables.Meters[i].Freq)
	}
}

func TestLoad_CertainCoversAlphabet(t *testing.T) {
	tables, err := NewLoader(nil).Load()
	require.NoError(t, err)

	// و and ی stay ambiguous; every other letter must become Latin.
	const letters = "ئابپتجچحخدرڕزژسشعغفڤقکگلڵمنۆەهێ"
	for _, r := range letters {
		out := ApplyAll(tables.Certain, string(r))
		got, _ := utf8.DecodeRuneInString(out)
		if got == r || got >= 0x0600 && got <= 0x06FF {
			t.Errorf("letter %q not converted, got %q", r, out)
		}
	}

	assert.Equal(t, "و", ApplyAll(tables.Certain, "و"))
	assert.Equal(t, "ی", ApplyAll(tables.Certain, "ی"))
}

func TestLoad_InitialR(t *testing.T) {
	tables, err := NewLoader(nil).Load()
	require.NoError(t, err)

	assert.Equal(t, "řar", ApplyAll(tables.Certain, "ڕار"))
	assert.Equal(t, "řar", ApplyAll(tables.Certain, "رار"))
}

func TestLoad_OnceAcrossGoroutines(t *testing.T) {
	l := NewLoader(nil)

	var wg sync.WaitGroup
	results := make([]*Tables, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = l.Load()
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("expected every caller to receive the same tables")
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	fsys := fstest.MapFS{
		certainFile: {Data: []byte("version: 1\nrules:\n  - {find: a, replace: b}\n")},
	}

	l := NewLoader(fsys)
	_, err := l.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingReferenceData))

	// The failure is sticky.
	_, err2 := l.Load()
	assert.Equal(t, err, err2)
}

func TestLoad_BadPattern(t *testing.T) {
	ok := []byte("version: 1\nrules:\n  - {find: a, replace: b}\n")
	fsys := fstest.MapFS{
		exceptionsFile: {Data: []byte("version: 1\nrules:\n  - {find: \"(\", replace: b}\n")},
		certainFile:    {Data: ok},
		ipaFile:        {Data: ok},
		patternsFile:   {Data: []byte("version: 1\npatterns:\n  - {freq: 1, weights: \"–∪\", title: t}\n")},
	}

	_, err := NewLoader(fsys).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingReferenceData)
}

func TestLoad_EmptyTable(t *testing.T) {
	ok := []byte("version: 1\nrules:\n  - {find: a, replace: b}\n")
	fsys := fstest.MapFS{
		exceptionsFile: {Data: ok},
		certainFile:    {Data: ok},
		ipaFile:        {Data: ok},
		patternsFile:   {Data: []byte("version: 1\npatterns: []\n")},
	}

	_, err := NewLoader(fsys).Load()
	assert.ErrorIs(t, err, ErrMissingReferenceData)
}

func TestRule_ApplyInOrder(t *testing.T) {
	fsys := fstest.MapFS{
		exceptionsFile: {Data: []byte("version: 1\nrules:\n  - {find: a, replace: b}\n  - {find: b, replace: c}\n")},
		certainFile:    {Data: []byte("version: 1\nrules:\n  - {find: \"(x)(y)\", replace: \"$2$1\"}\n")},
		ipaFile:        {Data: []byte("version: 1\nrules:\n  - {find: a, replace: b}\n")},
		patternsFile:   {Data: []byte("version: 1\npatterns:\n  - {freq: 1, weights: \"–∪\", title: t}\n")},
	}

	tables, err := NewLoader(fsys).Load()
	require.NoError(t, err)

	assert.Equal(t, "cc", ApplyAll(tables.Exceptions, "ab"))
	assert.Equal(t, "yx", ApplyAll(tables.Certain, "xy"))
}
