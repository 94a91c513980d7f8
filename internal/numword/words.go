package numword

// Central Kurdish number words.
var (
	ones = [10]string{"", "یەک", "دوو", "سێ", "چوار", "پێنج", "شەش", "حەوت", "هەشت", "نۆ"}

	teens = [10]string{"دە", "یازدە", "دوازدە", "سێزدە", "چواردە", "پازدە", "شازدە", "حەڤدە", "هەژدە", "نۆزدە"}

	tens = [10]string{"", "", "بیست", "سی", "چل", "پەنجا", "شەست", "هەفتا", "هەشتا", "نەوەد"}

	hundreds = [10]string{"", "سەد", "دووسەد", "سێسەد", "چوارسەد", "پێنسەد", "شەشسەد", "حەوتسەد", "هەشتسەد", "نۆسەد"}

	// scales[i] names the i-th group of three digits counted from the right.
	scales = [7]string{"", "هەزار", "ملیۆن", "ملیار", "تریلیۆن", "کوادرلیۆن", "کوینتیلیۆن"}
)

const (
	wordZero     = "سفر"
	wordAnd      = " و "
	wordPoint    = "پۆینت"
	wordNegative = "ناقس"
	wordPercent  = "لە سەد"
	wordPercentA = "لە سەددا"
	wordDollar   = "دۆلار"
	wordPound    = "پاوەن"
	wordEuro     = "یۆرۆ"
)

// maxDigits is the longest integer that can be spelled with scales.
const maxDigits = 3 * len(scales)
