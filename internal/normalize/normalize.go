// Package normalize maps raw Central Kurdish text to the canonical
// orthographic form the G2P engine expects.
//
// Every function is idempotent and total: characters outside the Kurdish
// alphabet pass through unchanged unless a rule names them.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type replacement struct {
	re   *regexp.Regexp
	with string
}

func compile(pairs ...string) []replacement {
	out := make([]replacement, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, replacement{re: regexp.MustCompile(pairs[i]), with: pairs[i+1]})
	}
	return out
}

func apply(list []replacement, s string) string {
	for _, r := range list {
		s = r.re.ReplaceAllString(s, r.with)
	}
	return s
}

// g2pRules run strictly in order.
var g2pRules = compile(
	"  +", " ",
	"دٚ", "ڎ",
	"گٚ", "ڴ",
	`(^|\s)چ بکە`, "${1}چبکە",
	"َ", "ە", // fatha
	"ِ", "ی", // kasra
	"ُ", "و", // damma
	"ء", "ئ",
	"أ", "ئە",
	"إ", "ئی",
	"آ", "ئا",
	"ظ|ذ|ض", "ز",
	"ص|ث", "س",
	"ط", "ت",
	"ك", "ک",
	"ي|ى", "ی",
	"ه\u200c", "ە",
	"ھ", "ه",
	"ـ", "",
	"؟", "?",
	"،", ",",
	"؛", ";",
	"\r", "",
)

var poemRules = compile(
	"ط", "ت",
	"[صث]", "س",
	"[ضذظ]", "ز",
	"( و)[.،؟!]", "${1}",
)

var digitReplacer = strings.NewReplacer(
	"۰", "0", "٠", "0",
	"۱", "1", "١", "1",
	"۲", "2", "٢", "2",
	"۳", "3", "٣", "3",
	"۴", "4", "٤", "4",
	"۵", "5", "٥", "5",
	"۶", "6", "٦", "6",
	"۷", "7", "٧", "7",
	"۸", "8", "٨", "8",
	"۹", "9", "٩", "9",
)

// Letters is the Central Kurdish alphabet, including the dialect letters
// ۋ ۉ ۊ ڎ ڴ ݵ ݸ.
const Letters = "ئابپتجچحخدرڕزژسشعغفڤقکگلڵمنوۆەهیێ" + "ۋۉۊڎڴݵݸ"

// IsLetter reports whether r is a Kurdish letter.
func IsLetter(r rune) bool {
	return strings.ContainsRune(Letters, r)
}

// ForG2P returns the canonical form used for G2P conversion: NFC, then the
// orthographic rules (Arabic letters and harakat mapped to Kurdish ones,
// Arabic punctuation to ASCII, tatweel removed, runs of spaces collapsed).
func ForG2P(text string) string {
	return apply(g2pRules, norm.NFC.String(text))
}

// UnifyNumerals rewrites Eastern Arabic and Persian digits as ASCII digits.
func UnifyNumerals(text string) string {
	return digitReplacer.Replace(text)
}

// ForPoem prepares poem text for classification: rare Arabic letters are
// folded and a conjunction directly before a full stop, comma, question or
// exclamation mark loses the punctuation.
func ForPoem(text string) string {
	return apply(poemRules, text)
}
