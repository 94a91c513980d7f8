// Package translit renders G2P output in other Latin notations (Hawar, a
// simplified ASCII-leaning Latin, IPA) and maps Hawar Latin back to the
// Arabic-based script.
package translit

import (
	"strings"
	"unicode"

	"github.com/ppiankov/kurdg2p/internal/phoneme"
	"github.com/ppiankov/kurdg2p/internal/resources"
)

const (
	glottalStop = 'ʔ'
	pharyngeal  = 'ƹ'
	apostrophe  = "’"
	middleDot   = "·"
)

var simpleReplacer = strings.NewReplacer(
	"ḧ", "h",
	"ř", "r",
	"ł", "l",
	"ẍ", "x",
)

// ToHawar converts phonemic output to Hawar Latin: syllable marks go, a
// word-initial glottal stop is dropped and the remaining ʔ and ƹ are
// written as ’.
func ToHawar(phonemes string) string {
	s := strings.ReplaceAll(phonemes, phoneme.MarkString, "")

	var b strings.Builder
	b.Grow(len(s))
	prev := rune(-1)
	for _, r := range s {
		switch {
		case r == glottalStop && !isWordRune(prev):
		case r == glottalStop || r == pharyngeal:
			b.WriteString(apostrophe)
		default:
			b.WriteRune(r)
		}
		prev = r
	}

	return b.String()
}

// ToSimpleLatin is ToHawar with ḧ ř ł ẍ flattened to h r l x.
func ToSimpleLatin(phonemes string) string {
	return simpleReplacer.Replace(ToHawar(phonemes))
}

// IPA maps phonemic output to IPA with a reference table.
type IPA struct {
	rules []resources.Rule
}

// NewIPA creates an IPA converter from the loaded tables.
func NewIPA(tables *resources.Tables) *IPA {
	return &IPA{rules: tables.IPA}
}

// Convert drops word-initial syllable marks, turns the others into middle
// dots and applies the phoneme table in order.
func (t *IPA) Convert(phonemes string) string {
	var b strings.Builder
	b.Grow(len(phonemes))
	prev := rune(-1)
	for _, r := range phonemes {
		if r == phoneme.Mark {
			if isWordRune(prev) {
				b.WriteString(middleDot)
			}
		} else {
			b.WriteRune(r)
		}
		prev = r
	}

	return resources.ApplyAll(t.rules, b.String())
}

// isWordRune reports whether r continues a word. The syllable mark is a
// modifier letter and counts as one. -1 stands for the start of text.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
