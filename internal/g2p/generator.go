package g2p

import (
	"regexp"
	"strings"

	"github.com/ppiankov/kurdg2p/internal/phoneme"
	"github.com/ppiankov/kurdg2p/internal/resources"
)

const (
	waw = 'و'
	yeh = 'ی'
)

// wawReadings[n] lists the attested readings of a run of n و.
var wawReadings = [...][]string{
	1: {"u", "w"},
	2: {"wu", "uw", "ww", "û"},
	3: {"wuw", "wwu", "wû", "uww", "uwu", "ûw"},
	4: {"uwwu", "uwuw", "uwû", "wwuw", "wwû", "wuww", "wuwu", "wûw", "ûwu", "ûww"},
	5: {"uwuwu", "uwuww", "uwwuw", "uwûw", "wuwwu", "wuwuw", "wuwû", "wûww", "wwuwu", "wwuww", "wwûw", "wûwu", "ûwwu", "ûwuw", "ûwû"},
}

// yehReadings[n] lists the readings of a run of n ی.
var yehReadings = [...][]string{
	1: {"y", "î"},
	2: {"îy", "yî"},
}

var (
	// a syllable without a nucleus
	reNoNucleus = regexp.MustCompile(`ˈ[^aeêouûiîüȯė]+(ˈ|$)`)
	// four or more consonants after a vowel
	reLongCoda = regexp.MustCompile(`[aeêouûiîüȯė][^aeêouûiîüȯėˈ]{4,}`)
)

// Generator is GEN: it expands one orthographic word into every plausible
// syllabified reading.
type Generator struct {
	exceptions []resources.Rule
	certain    []resources.Rule
}

// NewGenerator builds a generator over the loaded reference tables.
func NewGenerator(tables *resources.Tables) *Generator {
	return &Generator{
		exceptions: tables.Exceptions,
		certain:    tables.Certain,
	}
}

// Generate returns the syllabified candidates for word, pruned of readings
// with a vowel-less syllable or a four-consonant coda. The order is stable
// for a given word.
func (g *Generator) Generate(word string) []string {
	s := resources.ApplyAll(g.exceptions, word)
	s = resources.ApplyAll(g.certain, s)

	return prune(syllabifyAll(epenthesize(expand(s))))
}

// expand walks s one orthographic unit at a time and grows the frontier of
// partial readings. Extensions creating a vowel hiatus, or putting "ww"
// after a consonant, are never admitted.
func expand(s string) []string {
	runes := []rune(s)
	frontier := []string{""}

	for i := 0; i < len(runes); {
		var options []string
		switch runes[i] {
		case waw:
			n := runLength(runes[i:], waw, len(wawReadings)-1)
			options = wawReadings[n]
			i += n
		case yeh:
			n := runLength(runes[i:], yeh, len(yehReadings)-1)
			options = yehReadings[n]
			i += n
		default:
			options = []string{string(runes[i])}
			i++
		}

		next := make([]string, 0, len(frontier)*len(options))
		for _, prefix := range frontier {
			for _, opt := range options {
				if admits(prefix, opt) {
					next = append(next, prefix+opt)
				}
			}
		}
		frontier = next
	}

	return frontier
}

func runLength(runes []rune, r rune, limit int) int {
	n := 0
	for n < len(runes) && n < limit && runes[n] == r {
		n++
	}
	return n
}

func admits(prefix, opt string) bool {
	prevVowel := phoneme.IsVowel(phoneme.LastRune(prefix), phoneme.GenVowels)
	nowVowel := opt != "" && phoneme.IsVowel([]rune(opt)[0], phoneme.GenVowels)

	if prevVowel && nowVowel {
		return false
	}
	if !prevVowel && strings.HasPrefix(opt, "ww") {
		return false
	}
	return true
}

// epenthesize adds the optional unwritten "i" between every two adjacent
// consonants, doubling the readings at each cluster.
func epenthesize(cands []string) []string {
	var out []string

	for _, cand := range cands {
		runes := []rune(cand)
		if len(runes) == 0 {
			out = append(out, cand)
			continue
		}

		branches := []string{string(runes[0])}
		for j := 1; j < len(runes); j++ {
			cluster := !phoneme.IsVowel(runes[j-1], phoneme.GenVowels) && !phoneme.IsVowel(runes[j], phoneme.GenVowels)

			next := make([]string, 0, 2*len(branches))
			for _, b := range branches {
				next = append(next, b+string(runes[j]))
				if cluster {
					next = append(next, b+"i"+string(runes[j]))
				}
			}
			branches = next
		}
		out = append(out, branches...)
	}

	return out
}

// syllabifyAll syllabifies every candidate. Resyllabified variants follow
// all primary readings.
func syllabifyAll(cands []string) []string {
	primary := make([]string, 0, len(cands))
	var variants []string

	for _, c := range cands {
		readings := Syllabify(c)
		primary = append(primary, readings[0])
		variants = append(variants, readings[1:]...)
	}

	return append(primary, variants...)
}

// prune drops readings no constraint ranking would prefer. A single
// candidate is always kept.
func prune(cands []string) []string {
	if len(cands) <= 1 {
		return cands
	}

	out := cands[:0]
	for _, c := range cands {
		if reNoNucleus.MatchString(c) || reLongCoda.MatchString(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}
