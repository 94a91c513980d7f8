package g2p

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/kurdg2p/internal/normalize"
	"github.com/ppiankov/kurdg2p/internal/numword"
	"github.com/ppiankov/kurdg2p/internal/phoneme"
)

const (
	conjunction       = "و"
	conjunctionOnset  = "ˈwe"
	conjunctionVowel  = "û"
	conjunctionGlide  = "w"
	conjunctionJoiner = " "
)

// ˈCiC closing a word: the i is dropped when û follows (ˈbeˈfir => ˈbefˈrû)
var reClosedI = regexp.MustCompile(`ˈ([^aeêouûiî])i([^aeêouûiî])$`)

// segment is a letter run with its readings, or verbatim non-letter text.
type segment struct {
	text  string
	cands []string
}

func (s segment) isWord() bool { return s.cands != nil }

// Sentence converts text. Non-letter runs are kept verbatim; the
// conjunction و is read "ˈwe" at the start of a clause and is otherwise
// merged into the preceding word (or read "û" when merging is off).
func (c *Converter) Sentence(text string, opts Options) (string, error) {
	gen, err := c.generator()
	if err != nil {
		return "", err
	}

	text = normalize.UnifyNumerals(text)
	if opts.ConvertNumbers {
		text = numword.Convert(text)
	}
	text = normalize.ForG2P(strings.TrimSpace(text))

	var segs []segment
	for _, run := range splitRuns(text) {
		if !normalize.IsLetter([]rune(run)[0]) {
			segs = append(segs, segment{text: run})
			continue
		}

		if run != conjunction {
			cands := strings.Split(c.lookup(gen, run), phoneme.Separator)
			if opts.SingleOutput {
				cands = cands[:1]
			}
			segs = append(segs, segment{cands: cands})
			continue
		}

		switch {
		case clauseStart(segs):
			segs = append(segs, segment{cands: []string{conjunctionOnset}})
		case opts.MergeConjunction && mergeable(segs):
			prev := &segs[len(segs)-2]
			prev.cands = attachConjunction(prev.cands)
			segs = segs[:len(segs)-1]
		default:
			segs = append(segs, segment{cands: []string{conjunctionVowel}})
		}
	}

	var b strings.Builder
	for _, s := range segs {
		if s.isWord() {
			b.WriteString(strings.Join(s.cands, phoneme.Separator))
		} else {
			b.WriteString(s.text)
		}
	}

	return strings.TrimRightFunc(b.String(), unicode.IsSpace), nil
}

// splitRuns cuts text into maximal Kurdish-letter and non-letter runs.
func splitRuns(text string) []string {
	var runs []string
	start := 0
	prevLetter := false

	for i, r := range text {
		letter := normalize.IsLetter(r)
		if i > 0 && letter != prevLetter {
			runs = append(runs, text[start:i])
			start = i
		}
		prevLetter = letter
	}
	if start < len(text) {
		runs = append(runs, text[start:])
	}

	return runs
}

// clauseStart reports whether a conjunction placed after segs opens a
// clause: at the very start, after . ? ! (optionally followed by one
// space) or after a line break.
func clauseStart(segs []segment) bool {
	if len(segs) == 0 {
		return true
	}

	last := segs[len(segs)-1]
	if last.isWord() {
		return false
	}
	if strings.HasSuffix(last.text, "\n") {
		return true
	}

	switch phoneme.LastRune(strings.TrimSuffix(last.text, " ")) {
	case '.', '?', '!':
		return true
	}
	return false
}

// mergeable reports whether segs end with a word followed by a single space.
func mergeable(segs []segment) bool {
	n := len(segs)
	return n >= 2 && !segs[n-1].isWord() && segs[n-1].text == conjunctionJoiner && segs[n-2].isWord()
}

// attachConjunction merges û into every pending reading and collapses the
// readings that became identical.
func attachConjunction(cands []string) []string {
	out := make([]string, 0, len(cands))
	seen := make(map[string]bool, len(cands))

	for _, cand := range cands {
		merged := withConjunction(cand)
		if seen[merged] {
			continue
		}
		seen[merged] = true
		out = append(out, merged)
	}

	return out
}

func withConjunction(cand string) string {
	last := phoneme.LastRune(cand)
	if last == 0 {
		return conjunctionVowel
	}
	if phoneme.IsVowel(last, phoneme.CoreVowels) {
		return cand + conjunctionGlide
	}

	if m := reClosedI.FindStringSubmatchIndex(cand); m != nil && m[0] > 0 {
		c1 := cand[m[2]:m[3]]
		c2 := cand[m[4]:m[5]]
		return cand[:m[0]] + c1 + phoneme.MarkString + c2 + conjunctionVowel
	}

	cut := len(cand) - utf8.RuneLen(last)
	return cand[:cut] + phoneme.MarkString + cand[cut:] + conjunctionVowel
}
