// Package arabic provides script-tolerant normalization for Arabic text.
//
// Matching hadith text requires ignoring tashkeel (diacritics), tatweel
// elongation and the orthographic variants of hamza and alef: the same
// word is written fully vocalized in the corpus and bare in queries.
// All functions are pure so they can run concurrently during indexing.
package arabic

import "strings"

const tatweel = 'ـ'

// hamzaMapping normalizes hamza carriers to their base letters.
var hamzaMapping = map[rune]rune{
	'أ': 'ا', // أ -> ا
	'إ': 'ا', // إ -> ا
	'آ': 'ا', // آ -> ا
	'ؤ': 'و', // ؤ -> و
	'ئ': 'ي', // ئ -> ي
	'ٱ': 'ا', // ٱ (wasla) -> ا
	'ى': 'ي', // ى (alef maqsura) -> ي
}

// IsDiacritic reports whether r is an Arabic tashkeel mark
// (fathatan..sukun range plus the superscript alef).
func IsDiacritic(r rune) bool {
	return (r >= 'ً' && r <= 'ٟ') || r == 'ٰ'
}

// IsArabic reports whether r falls in the Arabic script blocks.
func IsArabic(r rune) bool {
	return (r >= '؀' && r <= 'ۿ') ||
		(r >= 'ݐ' && r <= 'ݿ') ||
		(r >= 'ࢠ' && r <= 'ࣿ')
}

// ContainsArabic reports whether s has at least one Arabic rune.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if IsArabic(r) {
			return true
		}
	}
	return false
}

// Normalize applies the full normalization: diacritics and tatweel are
// dropped, hamza and alef variants collapse to their base letters.
// Non-Arabic runes pass through unchanged.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsDiacritic(r) || r == tatweel {
			continue
		}
		if base, ok := hamzaMapping[r]; ok {
			r = base
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stemPrefixes and stemSuffixes follow the light10 stemmer: strip the
// definite article with its attached particles, then one plural or
// pronoun suffix. Ordered longest first so the greedy strip is stable.
var stemPrefixes = []string{"وال", "بال", "كال", "فال", "لل", "ال", "و"}

var stemSuffixes = []string{"ها", "ان", "ات", "ون", "ين", "يه", "ية", "ه", "ة", "ي"}

// Stem reduces a normalized Arabic word to a light stem. The stem must
// keep at least two letters; shorter results leave the word untouched.
// Non-Arabic input is returned as-is.
func Stem(word string) string {
	if !ContainsArabic(word) {
		return word
	}
	runes := []rune(word)
	for _, p := range stemPrefixes {
		pr := []rune(p)
		if len(runes)-len(pr) >= 2 && strings.HasPrefix(string(runes), p) {
			runes = runes[len(pr):]
			break
		}
	}
	for _, s := range stemSuffixes {
		sr := []rune(s)
		if len(runes)-len(sr) >= 2 && strings.HasSuffix(string(runes), s) {
			runes = runes[:len(runes)-len(sr)]
			break
		}
	}
	return string(runes)
}
