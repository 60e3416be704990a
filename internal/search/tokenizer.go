package search

import (
	"strings"
	"unicode"

	"github.com/alhifz/hifz/internal/arabic"
)

// Token is one indexable term together with its byte range in the
// source text. Start/End refer to the original, un-normalized string
// so excerpts can point back into it.
type Token struct {
	Term  string
	Start int
	End   int
}

// isTokenRune keeps letters, digits and combining marks together.
// Combining marks are not letters in Unicode, but splitting a
// vocalized Arabic word at its tashkeel would shred it.
func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// Tokenize splits text on whitespace and punctuation and normalizes
// each token: Arabic tokens are de-vocalized and light-stemmed, Latin
// tokens are case-folded. Mixed-script input works in a single pass,
// so a query combining Arabic and a transliteration needs no separate
// per-script invocation. Deterministic and allocation-only; safe for
// concurrent use. Empty or whitespace-only input yields no tokens.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}
	var tokens []Token
	start := -1
	for i, r := range text {
		if isTokenRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if tok, ok := makeToken(text[start:i], start, i); ok {
				tokens = append(tokens, tok)
			}
			start = -1
		}
	}
	if start >= 0 {
		if tok, ok := makeToken(text[start:], start, len(text)); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func makeToken(raw string, start, end int) (Token, bool) {
	var term string
	if arabic.ContainsArabic(raw) {
		term = arabic.Stem(arabic.Normalize(raw))
	} else {
		term = strings.ToLower(raw)
	}
	if term == "" {
		return Token{}, false
	}
	return Token{Term: term, Start: start, End: end}, true
}

// QueryTerms tokenizes a query and returns its distinct terms in
// first-seen order.
func QueryTerms(query string) []string {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t.Term]; ok {
			continue
		}
		seen[t.Term] = struct{}{}
		terms = append(terms, t.Term)
	}
	return terms
}
