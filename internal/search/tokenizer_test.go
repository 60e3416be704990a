package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terms(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Term
	}
	return out
}

func TestTokenize_Latin(t *testing.T) {
	tokens := Tokenize("Actions are judged, by Intentions!")
	assert.Equal(t, []string{"actions", "are", "judged", "by", "intentions"}, terms(tokens))
}

func TestTokenize_ArabicVocalized(t *testing.T) {
	tokens := Tokenize("إِنَّمَا الأَعْمَالُ بِالنِّيَّاتِ")
	require.Len(t, tokens, 3)
	// De-vocalized and light-stemmed
	assert.Equal(t, []string{"انما", "اعمال", "ني"}, terms(tokens))
}

func TestTokenize_MixedScript(t *testing.T) {
	tokens := Tokenize("hadith عن النية")
	assert.Equal(t, []string{"hadith", "عن", "ني"}, terms(tokens))
}

func TestTokenize_Offsets(t *testing.T) {
	text := "one  two"
	tokens := Tokenize(text)
	require.Len(t, tokens, 2)
	assert.Equal(t, "one", text[tokens[0].Start:tokens[0].End])
	assert.Equal(t, "two", text[tokens[1].Start:tokens[1].End])
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \t\n "))
	assert.Empty(t, Tokenize("... !!! ،،،"))
}

func TestQueryTerms_Deduplicates(t *testing.T) {
	// Both surface forms stem to the same term
	assert.Equal(t, []string{"ني"}, QueryTerms("النية بالنيات"))
	assert.Equal(t, []string{"salah", "prayer"}, QueryTerms("salah prayer Salah"))
}
