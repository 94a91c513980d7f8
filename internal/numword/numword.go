// Package numword spells out the numbers in Central Kurdish text so that they
// can be converted to phonemes like any other word.
//
// Convert handles thousands separators, negative numbers, percent signs,
// $ £ € amounts and decimals. Digit runs longer than the largest named scale
// (10^21) are left as digits.
//
// All functions are safe for concurrent use by multiple goroutines.
package numword

import (
	"regexp"
	"strings"

	"github.com/ppiankov/kurdg2p/internal/normalize"
)

var (
	reThousandsSep = regexp.MustCompile(`([0-9]{1,3})[,،]([0-9]{3})`)
	reNegative     = regexp.MustCompile(`(^|[^0-9])-([0-9]+)`)
	rePercentPre   = regexp.MustCompile(`(^|[^0-9])% ?([0-9]+)`)
	rePercentPost  = regexp.MustCompile(`([0-9]+) ?%`)
	reDollar       = regexp.MustCompile(`\$ ?([0-9]+(\.[0-9]+)?)`)
	rePound        = regexp.MustCompile(`£ ?([0-9]+(\.[0-9]+)?)`)
	reEuro         = regexp.MustCompile(`€ ?([0-9]+(\.[0-9]+)?)`)
	reFloat        = regexp.MustCompile(`([0-9]+)\.([0-9]+)`)
	reInteger      = regexp.MustCompile(`[0-9]+`)
)

// Convert replaces every number in text with its Central Kurdish words.
func Convert(text string) string {
	text = normalize.UnifyNumerals(text)

	// 12,345,678 => 12345678; each pass removes every other separator.
	for {
		next := reThousandsSep.ReplaceAllString(text, "${1}${2}")
		if next == text {
			break
		}
		text = next
	}

	text = reNegative.ReplaceAllString(text, "${1}"+wordNegative+" ${2}")
	text = rePercentPre.ReplaceAllString(text, "${1}"+wordPercentA+" ${2}")
	text = rePercentPost.ReplaceAllString(text, "${1} "+wordPercent)
	text = reDollar.ReplaceAllString(text, "${1} "+wordDollar)
	text = rePound.ReplaceAllString(text, "${1} "+wordPound)
	text = reEuro.ReplaceAllString(text, "${1} "+wordEuro)

	text = reFloat.ReplaceAllStringFunc(text, func(m string) string {
		parts := reFloat.FindStringSubmatch(m)
		return Decimal(parts[1], parts[2])
	})

	return reInteger.ReplaceAllStringFunc(text, Integer)
}

// Decimal spells an integer part and a fractional part joined by "پۆینت".
// Leading zeros of the fraction are read one by one as "سفر".
func Decimal(integer, fraction string) string {
	var b strings.Builder
	b.WriteString(Integer(integer))
	b.WriteString(" ")
	b.WriteString(wordPoint)

	rest := strings.TrimLeft(fraction, "0")
	for range len(fraction) - len(rest) {
		b.WriteString(" ")
		b.WriteString(wordZero)
	}
	if rest != "" {
		b.WriteString(" ")
		b.WriteString(Integer(rest))
	}

	return b.String()
}

// Integer spells a run of ASCII digits. Runs that are too long for the scale
// table, or that contain anything but digits, are returned unchanged.
func Integer(digits string) string {
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return digits
	}

	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return wordZero
	}
	if len(trimmed) > maxDigits {
		return digits
	}

	var groups []string
	for scale := 0; len(trimmed) > 0; scale++ {
		start := max(len(trimmed)-3, 0)
		chunk := trimmed[start:]
		trimmed = trimmed[:start]

		value := atoi(chunk)
		if value == 0 {
			continue
		}

		words := spellGroup(value)
		if scale > 0 {
			if scale == 1 && value == 1 {
				// "یەک هەزار" is read as plain "هەزار"
				words = scales[scale]
			} else {
				words += " " + scales[scale]
			}
		}
		groups = append(groups, words)
	}

	// Groups were collected from the least significant end.
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}

	return strings.Join(groups, wordAnd)
}

// spellGroup spells a value in [1, 999].
func spellGroup(n int) string {
	c, x, i := n/100, n/10%10, n%10

	var b strings.Builder
	b.WriteString(hundreds[c])
	if c != 0 && (x != 0 || i != 0) {
		b.WriteString(wordAnd)
	}

	if x == 1 {
		b.WriteString(teens[i])
		return b.String()
	}

	b.WriteString(tens[x])
	if x != 0 && i != 0 {
		b.WriteString(wordAnd)
	}
	b.WriteString(ones[i])

	return b.String()
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
