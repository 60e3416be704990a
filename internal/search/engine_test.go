package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/alhifz/hifz/internal/entities"
)

// fakeStore serves a fixed corpus and implements the substring
// fallback in memory, mirroring the relational repository's contract.
type fakeStore struct {
	corpus  []entities.Hadith
	loadErr error
	findErr error
}

func (f *fakeStore) GetAll() ([]entities.Hadith, error) {
	return f.corpus, f.loadErr
}

func (f *fakeStore) GetByID(id uint) (*entities.Hadith, error) {
	for i := range f.corpus {
		if f.corpus[i].ID == id {
			h := f.corpus[i]
			return &h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) SearchSubstring(query, book, grade string, limit, offset int) ([]entities.Hadith, int64, error) {
	if f.findErr != nil {
		return nil, 0, f.findErr
	}
	lower := strings.ToLower(query)
	var matches []entities.Hadith
	for _, h := range f.corpus {
		if book != "" && h.Book.Slug != book {
			continue
		}
		if grade != "" && !hasGrade(h, grade) {
			continue
		}
		if strings.Contains(h.TextAr, query) ||
			strings.Contains(strings.ToLower(h.TextEn), lower) ||
			strings.Contains(strings.ToLower(h.NarratorEn), lower) {
			matches = append(matches, h)
		}
	}
	total := int64(len(matches))
	if offset >= len(matches) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func hasGrade(h entities.Hadith, grade string) bool {
	for _, g := range h.Grades {
		if strings.EqualFold(g.Grade, grade) {
			return true
		}
	}
	return false
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine := NewEngine(&fakeStore{corpus: testCorpus()}, opts...)
	require.NoError(t, engine.RebuildIndex(context.Background()))
	return engine
}

func hitIDs(res *Result) []uint {
	ids := make([]uint, len(res.Hits))
	for i, h := range res.Hits {
		ids[i] = h.HadithID
	}
	return ids
}

func TestSearch_ArabicQueryMatchesAfterNormalization(t *testing.T) {
	engine := newTestEngine(t)

	// Un-diacritized root form must match the vocalized corpus text
	res, err := engine.Search(context.Background(), Query{Text: "النية"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []uint{1}, hitIDs(res))
	assert.True(t, res.Ranked)
	assert.Equal(t, BackendIndex, res.Backend)
}

func TestSearch_EnglishQuery(t *testing.T) {
	engine := newTestEngine(t)

	res, err := engine.Search(context.Background(), Query{Text: "intentions"})
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, hitIDs(res))
}

func TestSearch_NoMatch(t *testing.T) {
	engine := newTestEngine(t)

	res, err := engine.Search(context.Background(), Query{Text: "zakat"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Hits)
}

func TestSearch_PrecisionNoStrayDocuments(t *testing.T) {
	engine := newTestEngine(t)

	res, err := engine.Search(context.Background(), Query{Text: "sincerity"})
	require.NoError(t, err)
	// Only document 2 contains the term in any field
	assert.Equal(t, []uint{2}, hitIDs(res))
}

func TestSearch_Validation(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Search(context.Background(), Query{Text: ""})
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = engine.Search(context.Background(), Query{Text: "   \t"})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = engine.Search(context.Background(), Query{Text: "faith", Offset: -1})
	assert.ErrorIs(t, err, ErrNegativeOffset)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearch_LimitClamping(t *testing.T) {
	engine := newTestEngine(t, WithPageLimits(2, 5))

	// Non-positive limit falls back to the default
	res, err := engine.Search(context.Background(), Query{Text: "the"})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Hits), 2)

	// Oversized limit is clamped, not rejected
	res, err = engine.Search(context.Background(), Query{Text: "the", Limit: 10000})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Hits), 5)
}

func TestSearch_PaginationWindow(t *testing.T) {
	engine := newTestEngine(t)

	all, err := engine.Search(context.Background(), Query{Text: "الدين النية اسلام"})
	require.NoError(t, err)
	require.Equal(t, 3, all.Total)

	// Window [1, 2)
	page, err := engine.Search(context.Background(), Query{Text: "الدين النية اسلام", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total, "total reports the full match count, not the window")
	require.Len(t, page.Hits, 1)
	assert.Equal(t, all.Hits[1].HadithID, page.Hits[0].HadithID)

	// Offset beyond the result list: empty window, true total
	past, err := engine.Search(context.Background(), Query{Text: "الدين النية اسلام", Offset: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, past.Total)
	assert.Empty(t, past.Hits)
}

func TestSearch_SupersetTokenMatchRanksFirst(t *testing.T) {
	book := entities.Book{ID: 1, Slug: "bukhari", NameEn: "Sahih al-Bukhari"}
	corpus := []entities.Hadith{
		// Matches only "prayer"; id deliberately lower than the
		// stronger match to prove ordering is not id-based.
		{ID: 1, BookID: 1, Book: book, HadithNumber: 1, TextEn: "prayer is light"},
		{ID: 2, BookID: 1, Book: book, HadithNumber: 2, TextEn: "the key to prayer is purification"},
	}
	engine := NewEngine(&fakeStore{corpus: corpus})
	require.NoError(t, engine.RebuildIndex(context.Background()))

	res, err := engine.Search(context.Background(), Query{Text: "prayer purification"})
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1}, hitIDs(res))
}

func TestSearch_TieBreakByHadithID(t *testing.T) {
	book := entities.Book{ID: 1, Slug: "bukhari"}
	corpus := []entities.Hadith{
		{ID: 7, BookID: 1, Book: book, HadithNumber: 7, TextEn: "seek knowledge"},
		{ID: 3, BookID: 1, Book: book, HadithNumber: 3, TextEn: "seek knowledge"},
	}
	engine := NewEngine(&fakeStore{corpus: corpus})
	require.NoError(t, engine.RebuildIndex(context.Background()))

	res, err := engine.Search(context.Background(), Query{Text: "knowledge"})
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 7}, hitIDs(res))
}

func TestSearch_BookFilter(t *testing.T) {
	engine := newTestEngine(t)

	res, err := engine.Search(context.Background(), Query{Text: "the", Book: "muslim"})
	require.NoError(t, err)
	for _, hit := range res.Hits {
		assert.Equal(t, "muslim", hit.BookSlug)
	}

	// Unknown book matches nothing rather than erroring
	res, err = engine.Search(context.Background(), Query{Text: "the", Book: "nonexistent"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestSearch_ExcerptsAreMarked(t *testing.T) {
	engine := newTestEngine(t)

	res, err := engine.Search(context.Background(), Query{Text: "intentions"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Contains(t, res.Hits[0].ExcerptEn, "<mark>intentions</mark>")
	// The Arabic field did not match but still shows its text
	assert.NotEmpty(t, res.Hits[0].ExcerptAr)
}

func TestRebuildIndex_Idempotent(t *testing.T) {
	engine := newTestEngine(t)

	first, err := engine.Search(context.Background(), Query{Text: "النية"})
	require.NoError(t, err)

	require.NoError(t, engine.RebuildIndex(context.Background()))
	second, err := engine.Search(context.Background(), Query{Text: "النية"})
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, hitIDs(first), hitIDs(second))
	require.Len(t, second.Hits, len(first.Hits))
	for i := range first.Hits {
		assert.InDelta(t, first.Hits[i].Score, second.Hits[i].Score, 1e-12)
	}
}

func TestRebuildIndex_StoreFailure(t *testing.T) {
	engine := NewEngine(&fakeStore{loadErr: errors.New("disk I/O error")})

	err := engine.RebuildIndex(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load corpus")
}

func TestSearch_FallbackWhenIndexNotBuilt(t *testing.T) {
	engine := NewEngine(&fakeStore{corpus: testCorpus()})
	// No RebuildIndex: the engine must fall back to substring search

	res, err := engine.Search(context.Background(), Query{Text: "intentions"})
	require.NoError(t, err)
	assert.Equal(t, BackendDatabase, res.Backend)
	assert.False(t, res.Ranked)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, uint(1), res.Hits[0].HadithID)
	assert.Equal(t, UnrankedScore, res.Hits[0].Score)
}

func TestSearch_FallbackHonorsPagination(t *testing.T) {
	engine := NewEngine(&fakeStore{corpus: testCorpus()})

	res, err := engine.Search(context.Background(), Query{Text: "the", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Hits, 1)
	// Fallback orders by hadith id ascending; offset 1 skips id 2
	assert.Equal(t, uint(3), res.Hits[0].HadithID)
}

func TestSearch_UnavailableWhenFallbackFails(t *testing.T) {
	engine := NewEngine(&fakeStore{findErr: errors.New("connection refused")})

	_, err := engine.Search(context.Background(), Query{Text: "anything"})
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

// stubRemote fails or answers according to its fields.
type stubRemote struct {
	result *Result
	err    error
	calls  int
}

func (s *stubRemote) Search(ctx context.Context, q Query) (*Result, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubRemote) IndexCorpus(ctx context.Context, corpus []entities.Hadith) error {
	return s.err
}

func TestSearch_RemoteBackendPreferred(t *testing.T) {
	remote := &stubRemote{result: &Result{Total: 42, Backend: BackendMeilisearch, Ranked: true}}
	engine := NewEngine(&fakeStore{corpus: testCorpus()}, WithRemoteBackend(remote))
	require.NoError(t, engine.RebuildIndex(context.Background()))

	res, err := engine.Search(context.Background(), Query{Text: "intentions"})
	require.NoError(t, err)
	assert.Equal(t, 42, res.Total)
	assert.Equal(t, BackendMeilisearch, res.Backend)
	assert.Equal(t, 1, remote.calls)
}

func TestSearch_RemoteFailureFallsBackToIndex(t *testing.T) {
	remote := &stubRemote{err: ErrBackendUnavailable}
	engine := NewEngine(&fakeStore{corpus: testCorpus()}, WithRemoteBackend(remote))
	require.NoError(t, engine.RebuildIndex(context.Background()))

	res, err := engine.Search(context.Background(), Query{Text: "intentions"})
	require.NoError(t, err)
	assert.Equal(t, BackendIndex, res.Backend)
	assert.True(t, res.Ranked)
	assert.Equal(t, []uint{1}, hitIDs(res))
}

func TestRebuildIndex_RemoteFailureDoesNotFailRebuild(t *testing.T) {
	remote := &stubRemote{err: ErrBackendUnavailable}
	engine := NewEngine(&fakeStore{corpus: testCorpus()}, WithRemoteBackend(remote))

	assert.NoError(t, engine.RebuildIndex(context.Background()))
	assert.NotNil(t, engine.index.Snapshot())
}

func TestSearch_GradeFilter(t *testing.T) {
	engine := newTestEngine(t)

	// Only hadith 1 carries a grade; matching is case-insensitive
	for _, grade := range []string{"sahih", "Sahih"} {
		res, err := engine.Search(context.Background(), Query{Text: "الدين النية اسلام", Grade: grade})
		require.NoError(t, err)
		assert.Equal(t, []uint{1}, hitIDs(res), "grade %q", grade)
	}

	// Unknown grade matches nothing rather than erroring
	res, err := engine.Search(context.Background(), Query{Text: "الدين النية اسلام", Grade: "daif"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)

	// Book and grade filters compose
	res, err = engine.Search(context.Background(), Query{Text: "الدين النية اسلام", Book: "muslim", Grade: "sahih"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestSearch_HitsCarryGrades(t *testing.T) {
	engine := newTestEngine(t)

	res, err := engine.Search(context.Background(), Query{Text: "intentions"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, []string{"Sahih"}, res.Hits[0].Grades)
}

func TestSearch_FallbackGradeFilter(t *testing.T) {
	engine := NewEngine(&fakeStore{corpus: testCorpus()})
	// No RebuildIndex: the substring fallback serves the request

	res, err := engine.Search(context.Background(), Query{Text: "intentions", Grade: "sahih"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, uint(1), res.Hits[0].HadithID)
	assert.Equal(t, []string{"Sahih"}, res.Hits[0].Grades)

	res, err = engine.Search(context.Background(), Query{Text: "intentions", Grade: "daif"})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}

func TestAutocomplete_LimitBounds(t *testing.T) {
	book := entities.Book{ID: 1, Slug: "bukhari"}
	corpus := make([]entities.Hadith, 25)
	for i := range corpus {
		corpus[i] = entities.Hadith{
			ID: uint(i + 1), BookID: 1, Book: book, HadithNumber: i + 1,
			TextEn: "seek knowledge",
		}
	}
	engine := NewEngine(&fakeStore{corpus: corpus})
	require.NoError(t, engine.RebuildIndex(context.Background()))

	// Non-positive limit falls back to the suggestion default
	res, err := engine.Autocomplete(context.Background(), "knowledge", 0)
	require.NoError(t, err)
	assert.Len(t, res.Hits, 10)
	assert.Equal(t, 25, res.Total)

	// Oversized limit is capped, not rejected
	res, err = engine.Autocomplete(context.Background(), "knowledge", 50)
	require.NoError(t, err)
	assert.Len(t, res.Hits, 20)
}

func TestVerify_ExactTextIsFound(t *testing.T) {
	engine := newTestEngine(t)

	// Bare (un-diacritized) rendition of hadith 1's Arabic text
	v, err := engine.Verify(context.Background(), "إنما الأعمال بالنيات")
	require.NoError(t, err)
	assert.True(t, v.Found)
	require.NotNil(t, v.Hadith)
	assert.Equal(t, uint(1), v.Hadith.ID)
	assert.NotEmpty(t, v.Hadith.Grades)
	assert.Empty(t, v.Similar)
	assert.NotEmpty(t, v.Message)
}

func TestVerify_NearMissReturnsSimilar(t *testing.T) {
	engine := newTestEngine(t)

	// Shares only one term with any hadith: below the match threshold
	v, err := engine.Verify(context.Background(), "sincerity of worship matters")
	require.NoError(t, err)
	assert.False(t, v.Found)
	assert.Nil(t, v.Hadith)
	require.NotEmpty(t, v.Similar)
	assert.LessOrEqual(t, len(v.Similar), 3)
	ids := make([]uint, 0, len(v.Similar))
	for _, h := range v.Similar {
		ids = append(ids, h.ID)
	}
	assert.Contains(t, ids, uint(2))
}

func TestVerify_NoCandidates(t *testing.T) {
	engine := newTestEngine(t)

	v, err := engine.Verify(context.Background(), "zakat almsgiving obligation")
	require.NoError(t, err)
	assert.False(t, v.Found)
	assert.Empty(t, v.Similar)
	assert.NotEmpty(t, v.Message)
}

func TestVerify_SearchOutageIsNotAnError(t *testing.T) {
	engine := NewEngine(&fakeStore{findErr: errors.New("connection refused")})
	// No snapshot and a failing fallback: every backend is down

	v, err := engine.Verify(context.Background(), "إنما الأعمال بالنيات")
	require.NoError(t, err)
	assert.False(t, v.Found)
	assert.Contains(t, v.Message, "unavailable")
}

func TestVerify_ValidationStillFails(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Verify(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIndexedDocuments(t *testing.T) {
	engine := NewEngine(&fakeStore{corpus: testCorpus()})

	docs, ok := engine.IndexedDocuments()
	assert.False(t, ok)
	assert.Zero(t, docs)

	require.NoError(t, engine.RebuildIndex(context.Background()))
	docs, ok = engine.IndexedDocuments()
	assert.True(t, ok)
	assert.Equal(t, 3, docs)
}
