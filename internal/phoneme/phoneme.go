// Package phoneme holds the phoneme inventory shared by the G2P engine and the
// meter classifier: the syllable mark, the vowel sets each rule family works
// with, and the sonority scale used by the SSP constraints.
//
// The vowel sets differ on purpose. Candidate generation treats the dialect
// vowels ü ȯ ė as vowels, syllabification and most constraints ignore ü, and
// the narrow cluster corrections only look at the eight standard vowels.
package phoneme

import "strings"

// Mark is the syllable boundary marker inserted before every syllable.
const Mark = 'ˈ'

// MarkString is Mark as a string.
const MarkString = "ˈ"

// Separator joins the near-optimal candidates of one word. It never appears
// in phonemic output otherwise.
const Separator = "¶"

const (
	// GenVowels are the vowels seen by candidate generation.
	GenVowels = "aeêouûiîüȯė"
	// SyllableVowels are the vowels seen by the syllabifier and the core constraints.
	SyllableVowels = "aeêouûiîȯė"
	// CoreVowels are the standard Central Kurdish vowels.
	CoreVowels = "aeêouûiî"
)

// Glides can act as the second member of a CG onset.
const Glides = "wy"

// IsVowel reports whether r belongs to the vowel set.
func IsVowel(r rune, set string) bool {
	return strings.ContainsRune(set, r)
}

// IsGlide reports whether r is w or y.
func IsGlide(r rune) bool {
	return r == 'w' || r == 'y'
}

// Sonority ranks a consonant on the 1..6 scale used by the Sonority
// Sequencing Principle: stop=1, affricate=2, fricative=3, nasal=4,
// liquid=5, glide=6. Anything unknown ranks as a stop.
func Sonority(r rune) int {
	switch {
	case strings.ContainsRune("wy", r):
		return 6
	case strings.ContainsRune("lłrř", r):
		return 5
	case strings.ContainsRune("mn", r):
		return 4
	case strings.ContainsRune("fvszşjxẍƹḧh", r):
		return 3
	case strings.ContainsRune("cç", r):
		return 2
	default:
		return 1
	}
}

// LastRune returns the final rune of s, or 0 for an empty string.
func LastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
