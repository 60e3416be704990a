package search

import "strings"

const (
	excerptRadius = 80 // bytes of context on each side of the first match
	excerptLead   = 200
	markPre       = "<mark>"
	markPost      = "</mark>"
)

// Excerpt returns a short snippet of text around the first occurrence
// of any query term, with every matched token inside the window
// wrapped in <mark> tags. When no term occurs in the text the leading
// part of the text is returned unmarked, so a hit that matched only
// on its Arabic field still shows its English text.
func Excerpt(text string, terms []string) string {
	if text == "" {
		return ""
	}
	termSet := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		termSet[t] = struct{}{}
	}

	tokens := Tokenize(text)
	var matched []Token
	for _, tok := range tokens {
		if _, ok := termSet[tok.Term]; ok {
			matched = append(matched, tok)
		}
	}
	if len(matched) == 0 {
		return truncate(text, excerptLead)
	}

	start := matched[0].Start - excerptRadius
	if start < 0 {
		start = 0
	}
	end := matched[0].End + excerptRadius
	if end > len(text) {
		end = len(text)
	}
	// Snap to rune boundaries.
	for start > 0 && !isRuneStart(text[start]) {
		start--
	}
	for end < len(text) && !isRuneStart(text[end]) {
		end++
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	pos := start
	for _, tok := range matched {
		if tok.Start < start || tok.End > end {
			continue
		}
		b.WriteString(text[pos:tok.Start])
		b.WriteString(markPre)
		b.WriteString(text[tok.Start:tok.End])
		b.WriteString(markPost)
		pos = tok.End
	}
	b.WriteString(text[pos:end])
	if end < len(text) {
		b.WriteString("...")
	}
	return b.String()
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	end := limit
	for end > 0 && !isRuneStart(text[end]) {
		end--
	}
	return text[:end] + "..."
}
