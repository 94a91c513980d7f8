package g2p

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/kurdg2p/internal/model"
	"github.com/ppiankov/kurdg2p/internal/phoneme"
)

// tolerance is the width of the selection band above the best penalty.
const tolerance = 5

// constraint is one weighted violation counter of EVAL.
type constraint struct {
	name   string
	weight int
	count  func(cand string) int
}

func pattern(name string, weight int, expr string) constraint {
	re := regexp.MustCompile(expr)
	return constraint{name: name, weight: weight, count: func(c string) int {
		return len(re.FindAllStringIndex(c, -1))
	}}
}

func literal(name string, weight int, sub string) constraint {
	return constraint{name: name, weight: weight, count: func(c string) int {
		return strings.Count(c, sub)
	}}
}

var (
	reComplexCoda       = regexp.MustCompile(`[aeêouûiîȯė][^aeêouûiîȯėˈ]{3}`)
	reLexicalCluster    = regexp.MustCompile(`(rift|neft|kurt|girt|xirt|germ|term|port)`)
	reSuffixCluster     = regexp.MustCompile(`[aeêouûiîȯė]([^aeêouûiîyȯėˈ]m|[^aeêouûiîysşxwˈ]t)$`)
	reNonInitialCGOnset = regexp.MustCompile(`ˈ[^aeêouûiî][wy]`)
	reSonorityOnsetI    = regexp.MustCompile(`([^aeêouûiîˈ])ˈ([^aeêouûiîˈ])i([^aeêouûiîˈ])`)
	reSonorityCodaSplit = regexp.MustCompile(`([^aeêouûiîˈ])([^aeêouûiîˈ])ˈ([^aeêouûiîˈ])`)
	reSonorityOpenI     = regexp.MustCompile(`([^aeêouûiîˈ])ˈ([^aeêouûiîˈ])iˈ([^aeêouûiîˈ])`)
	reSonorityClosedI   = regexp.MustCompile(`[aeêouûiî]ˈ([^aeêouûiîˈ])i([^aeêouûiîˈ])ˈ([^aeêouûiîˈ])`)
)

// constraints is the full EVAL ranking. Every counter reads the same
// candidate; none depends on another.
var constraints = []constraint{
	pattern("complex-onset", 20, `ˈ([^aeêouûiîȯėˈ]{2,}[wy]|[^aeêouûiîȯėˈ]+[^wy])[aeêouûiîȯė]`),
	{name: "complex-coda", weight: 10, count: func(c string) int {
		if c == "ˈpoynt" {
			return 0
		}
		return len(reComplexCoda.FindAllStringIndex(c, -1))
	}},
	pattern("trapped-glide-vowel-glide", 20, `[^aeêouûiîȯėˈ][wy][aeêouûiîȯė][wy][^aeêouûiîȯėˈ]`),
	{name: "coda-sonority-rise", weight: 10, count: codaSonorityRises},
	literal("epenthetic-i", 2, "i"),

	literal("k-r-split", 3, "kˈr"),
	pattern("stan-suffix", 3, `[^aeêouûiîȯėˈ]ˈsiˈtaˈ?n`),
	{name: "it-im-suffix", weight: 3, count: func(c string) int {
		if reLexicalCluster.MatchString(c) {
			return 0
		}
		return len(reSuffixCluster.FindAllStringIndex(c, -1))
	}},

	literal("yu", 5, "yu"),
	literal("uy", 5, "uy"),
	literal("yi", 5, "yi"),
	literal("wu", 5, "wu"),
	literal("wi", 2, "wi"),
	literal("iw", 2, "iw"),
	literal("wû", 5, "wû"),
	literal("u-wî", 1, "uˈwî"),

	pattern("consonant-yî", 3, `[^aeêouûiîȯė]ˈyî`),
	{name: "non-initial-cg-onset", weight: 3, count: func(c string) int {
		n := 0
		for _, loc := range reNonInitialCGOnset.FindAllStringIndex(c, -1) {
			if loc[0] > 0 {
				n++
			}
		}
		return n
	}},
	pattern("c-cy-onset", 2, `[^aeêouûiî]ˈ[^aeêouûiî][y][aeêouûî]`),
	pattern("wî-w", 3, `[^aeêouûiî]wîˈw`),
	pattern("ix-coda", 2, `[^aeêouûiî]ixˈ`),
	pattern("hel-prefix", 3, `^ˈhe(ł[^aeêouûiîˈ]ˈ|ˈłi)`),
	literal("rn", 5, "rn"),
	pattern("long-vowel-w-coda", 5, `[aêoûî][w][^aeêouûiîˈ]`),
	pattern("final-uw", 5, `uw(ˈ|$)`),
	pattern("ri-syllable", 5, `[aeêouûiî][^aeêouûiîˈ]ˈriˈ`),

	{name: "sonority-onset-i", weight: 3, count: func(c string) int {
		m := firstRunes(reSonorityOnsetI, c)
		return boolCount(m != nil && phoneme.Sonority(m[1]) > phoneme.Sonority(m[2]))
	}},
	{name: "sonority-coda-split", weight: 3, count: func(c string) int {
		m := firstRunes(reSonorityCodaSplit, c)
		return boolCount(m != nil && phoneme.Sonority(m[0]) > phoneme.Sonority(m[1]))
	}},
	{name: "sonority-open-i", weight: 3, count: func(c string) int {
		m := firstRunes(reSonorityOpenI, c)
		return boolCount(m != nil &&
			phoneme.Sonority(m[0]) > phoneme.Sonority(m[1]) &&
			phoneme.Sonority(m[1]) > phoneme.Sonority(m[2]))
	}},
	{name: "sonority-closed-i", weight: 3, count: func(c string) int {
		m := firstRunes(reSonorityClosedI, c)
		return boolCount(m != nil && phoneme.Sonority(m[2]) >= phoneme.Sonority(m[1]))
	}},
}

// firstRunes returns the single-rune groups of the first match of re.
func firstRunes(re *regexp.Regexp, s string) []rune {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	out := make([]rune, 0, len(m)-1)
	for _, g := range m[1:] {
		out = append(out, []rune(g)[0])
	}
	return out
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

// codaSonorityRises counts adjacent pairs of non-descending sonority inside
// every consonant run that directly follows a vowel.
func codaSonorityRises(c string) int {
	runes := []rune(c)
	n := 0

	for i := 0; i < len(runes); {
		if i == 0 || !phoneme.IsVowel(runes[i-1], phoneme.SyllableVowels) || !isCodaRune(runes[i]) {
			i++
			continue
		}

		end := i
		for end < len(runes) && isCodaRune(runes[end]) {
			end++
		}
		if end-i >= 2 {
			for j := i; j < end-1; j++ {
				if phoneme.Sonority(runes[j]) <= phoneme.Sonority(runes[j+1]) {
					n++
				}
			}
		}
		i = end
	}

	return n
}

func isCodaRune(r rune) bool {
	return r != phoneme.Mark && !phoneme.IsVowel(r, phoneme.SyllableVowels)
}

// Score computes the penalty of one candidate with its violation breakdown.
func Score(cand string) model.ScoredCandidate {
	sc := model.ScoredCandidate{Phonemes: cand}

	for _, con := range constraints {
		n := con.count(cand)
		if n == 0 {
			continue
		}
		sc.Penalty += n * con.weight
		sc.Violations = append(sc.Violations, model.Violation{
			Constraint: con.name,
			Count:      n,
			Weight:     con.weight,
		})
	}

	return sc
}

// Evaluate scores every distinct candidate and sorts them by ascending
// penalty. Ties keep generation order. Candidates inside the selection band
// are marked Selected.
func Evaluate(cands []string) []model.ScoredCandidate {
	seen := make(map[string]bool, len(cands))
	scored := make([]model.ScoredCandidate, 0, len(cands))

	for _, c := range cands {
		if seen[c] {
			continue
		}
		seen[c] = true
		scored = append(scored, Score(c))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Penalty < scored[j].Penalty
	})

	if len(scored) > 0 {
		limit := scored[0].Penalty + tolerance
		for i := range scored {
			scored[i].Selected = scored[i].Penalty < limit
		}
	}

	return scored
}

// Select joins the selected readings with the separator. An empty candidate
// set yields word itself.
func Select(word string, scored []model.ScoredCandidate) string {
	var out []string
	for _, sc := range scored {
		if sc.Selected {
			out = append(out, sc.Phonemes)
		}
	}
	if len(out) == 0 {
		return word
	}
	return strings.Join(out, phoneme.Separator)
}
