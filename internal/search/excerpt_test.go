package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt_MarksMatchedToken(t *testing.T) {
	got := Excerpt("Actions are judged by intentions", []string{"intentions"})
	assert.Equal(t, "Actions are judged by <mark>intentions</mark>", got)
}

func TestExcerpt_MarksAllMatchesInWindow(t *testing.T) {
	got := Excerpt("prayer upon prayer", []string{"prayer"})
	assert.Equal(t, "<mark>prayer</mark> upon <mark>prayer</mark>", got)
}

func TestExcerpt_MatchesVocalizedArabic(t *testing.T) {
	// The query term is the stemmed form of the vocalized word
	got := Excerpt("إِنَّمَا الأَعْمَالُ بِالنِّيَّاتِ", []string{"ني"})
	assert.Contains(t, got, "<mark>بِالنِّيَّاتِ</mark>")
}

func TestExcerpt_WindowsLongText(t *testing.T) {
	long := strings.Repeat("padding ", 40) + "needle " + strings.Repeat("padding ", 40)
	got := Excerpt(long, []string{"needle"})

	assert.Contains(t, got, "<mark>needle</mark>")
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Less(t, len(got), len(long))
}

func TestExcerpt_NoMatchReturnsLead(t *testing.T) {
	short := "The religion is sincerity"
	assert.Equal(t, short, Excerpt(short, []string{"zakat"}))

	long := strings.Repeat("word ", 100)
	got := Excerpt(long, []string{"zakat"})
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.NotContains(t, got, "<mark>")
}

func TestExcerpt_EmptyText(t *testing.T) {
	assert.Equal(t, "", Excerpt("", []string{"anything"}))
}
