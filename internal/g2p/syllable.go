package g2p

import "regexp"

var (
	// onset C or CG before a vowel
	reOnset = regexp.MustCompile(`([^aeêouûiîȯėwy][wy]|[^aeêouûiîȯė])([aeêouûiîȯė])`)
	reHead  = regexp.MustCompile(`^([^ˈ])`)
	// V(C)ˈCGV: the glide may start the syllable on its own
	reGlideOnset = regexp.MustCompile(`([aeêouûiîȯė][^aeêouûiîȯė]?)ˈ([^aeêouûiîȯėwy])([wy])`)
)

// Syllabify marks syllable boundaries in an unmarked reading. It returns
// one reading, or two when a consonant-glide onset could also be split
// (ˈbeˈsye and ˈbesˈye).
func Syllabify(cand string) []string {
	s := reOnset.ReplaceAllString(cand, "ˈ${1}${2}")
	s = reHead.ReplaceAllString(s, "ˈ${1}")

	if reGlideOnset.MatchString(s) {
		return []string{s, reGlideOnset.ReplaceAllString(s, "${1}${2}ˈ${3}")}
	}
	return []string{s}
}
