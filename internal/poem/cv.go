package poem

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/kurdg2p/internal/phoneme"
)

// Syllable weights
const (
	Heavy = "–"
	Light = "∪"
)

// maxHemistichRunes bounds the scanned line length; longer lines scan empty.
const maxHemistichRunes = 100

// juncture marks an open juncture (word-final punctuation or line end).
const juncture = "¤"

var (
	reBrackets  = regexp.MustCompile(`[\[\]«»]`)
	reJuncture  = regexp.MustCompile(`[\n\r?,;! ]+`)
	reGlide     = regexp.MustCompile(`([^ieuaêoîûˈ])([yw])`)
	reConsonant = regexp.MustCompile(`[bcçdfghḧjklłmnpqrřsşṣtvwxẍyzʔƹ]`)
	reHeavy     = regexp.MustCompile(`([ieuaêoîû]C+|[aêoû]$|[aêo]¤$)`)
	reLight     = regexp.MustCompile(`([ieu]$|i¤$)`)
)

// Weights derives the candidate heavy/light skeletons of one syllabified
// hemistich. Consonant-glide syllables (gyan, xwa) branch into "∪–" and
// "–"; heavy syllables in the first two positions may also scan light.
// Syllables matching neither shape contribute nothing.
func Weights(hemistich string) []string {
	if utf8.RuneCountInString(hemistich) > maxHemistichRunes {
		hemistich = " "
	}

	s := reBrackets.ReplaceAllString(hemistich, "")
	s = reJuncture.ReplaceAllString(s+"\n", juncture)
	s = strings.ReplaceAll(s, " ˈ"+juncture, juncture)
	s = strings.ReplaceAll(s, "îˈye", "iˈye") // ˈnîˈye => ˈniˈye
	s = reGlide.ReplaceAllString(s, "${1}ɰ")
	s = reConsonant.ReplaceAllString(s, "C")

	out := []string{""}
	for i, syl := range strings.Split(s, phoneme.MarkString)[1:] {
		switch {
		case strings.ContainsRune(syl, 'ɰ'):
			out = branch(out, Light+Heavy, Heavy)
		case reHeavy.MatchString(syl):
			if i < 2 {
				out = branch(out, Heavy, Light)
			} else {
				out = extend(out, Heavy)
			}
		case reLight.MatchString(syl):
			out = extend(out, Light)
		}
	}

	return out
}

// branch doubles the skeletons: the existing ones take primary, copies
// appended after them take alt.
func branch(skeletons []string, primary, alt string) []string {
	n := len(skeletons)
	out := make([]string, 2*n)
	for j, s := range skeletons {
		out[j] = s + primary
		out[n+j] = s + alt
	}
	return out
}

func extend(skeletons []string, w string) []string {
	for j := range skeletons {
		skeletons[j] += w
	}
	return skeletons
}
