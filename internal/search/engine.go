package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alhifz/hifz/internal/arabic"
	"github.com/alhifz/hifz/internal/entities"
)

// BM25 parameters (standard values).
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// UnrankedScore is the sentinel relevance score attached to hits from
// the substring fallback, which cannot rank.
const UnrankedScore = 1.0

// Backend names reported in result metadata.
const (
	BackendMeilisearch = "meilisearch"
	BackendIndex       = "index"
	BackendDatabase    = "database"
)

// Query is a search request. Book restricts results to one book slug;
// Grade restricts them to hadiths carrying that authenticity grade
// (matched case-insensitively). Limit and Offset window the ranked
// result list.
type Query struct {
	Text   string
	Book   string
	Grade  string
	Limit  int
	Offset int
}

// Hit is one scored search result.
type Hit struct {
	HadithID     uint     `json:"hadith_id"`
	HadithNumber int      `json:"hadith_number"`
	BookSlug     string   `json:"book_slug"`
	BookNameEn   string   `json:"book_name_en"`
	BookNameAr   string   `json:"book_name_ar"`
	ExcerptAr    string   `json:"excerpt_ar,omitempty"`
	ExcerptEn    string   `json:"excerpt_en,omitempty"`
	Grades       []string `json:"grades,omitempty"`
	Score        float64  `json:"score"`
}

// Result is a ranked, paginated result set. Total is always the full
// unwindowed match count. Ranked is false when the fallback served
// the request; callers cannot otherwise distinguish backends.
type Result struct {
	Total   int    `json:"total"`
	Hits    []Hit  `json:"hits"`
	Backend string `json:"backend"`
	Ranked  bool   `json:"ranked"`
	TookMs  int64  `json:"took_ms"`
}

// CorpusStore is the engine's view of the hadith table: the full
// corpus for rebuilds, single-record lookup for verification, and a
// substring search for the relational fallback path.
type CorpusStore interface {
	GetAll() ([]entities.Hadith, error)
	GetByID(id uint) (*entities.Hadith, error)
	SearchSubstring(query, book, grade string, limit, offset int) ([]entities.Hadith, int64, error)
}

// RemoteBackend is an optional dedicated search engine. Implementations
// must return ErrBackendUnavailable (possibly wrapped) when the engine
// cannot be reached so the caller can fall back.
type RemoteBackend interface {
	Search(ctx context.Context, q Query) (*Result, error)
	IndexCorpus(ctx context.Context, corpus []entities.Hadith) error
}

// Engine answers search queries against the best available backend:
// the remote engine when configured and healthy, otherwise the local
// inverted-index snapshot, otherwise a substring scan of the corpus.
type Engine struct {
	index  *Index
	store  CorpusStore
	remote RemoteBackend // nil when not configured

	defaultLimit int
	maxLimit     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRemoteBackend attaches a dedicated external search engine.
func WithRemoteBackend(b RemoteBackend) Option {
	return func(e *Engine) { e.remote = b }
}

// WithPageLimits overrides the default and maximum page sizes.
func WithPageLimits(def, max int) Option {
	return func(e *Engine) {
		if def > 0 {
			e.defaultLimit = def
		}
		if max > 0 {
			e.maxLimit = max
		}
	}
}

func NewEngine(store CorpusStore, opts ...Option) *Engine {
	e := &Engine{
		index:        NewIndex(),
		store:        store,
		defaultLimit: 20,
		maxLimit:     100,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RebuildIndex loads the corpus and publishes a fresh snapshot.
// Idempotent and safe to call repeatedly; concurrent calls are
// serialized by the index. When a remote backend is configured the
// corpus is pushed there as well, but a remote failure does not fail
// the rebuild: the local snapshot is authoritative.
func (e *Engine) RebuildIndex(ctx context.Context) error {
	corpus, err := e.store.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	start := time.Now()
	snap := e.index.Rebuild(corpus)
	log.Printf("Search index rebuilt: %d documents in %s", snap.Len(), time.Since(start).Round(time.Millisecond))

	if e.remote != nil {
		if err := e.remote.IndexCorpus(ctx, corpus); err != nil {
			log.Printf("WARNING: remote search backend indexing failed: %v", err)
		}
	}
	return nil
}

// Search validates and answers a query. Validation errors satisfy
// errors.Is(err, ErrValidation); ErrSearchUnavailable is returned only
// when every backend including the fallback has failed.
func (e *Engine) Search(ctx context.Context, q Query) (*Result, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, ErrEmptyQuery
	}
	if q.Offset < 0 {
		return nil, ErrNegativeOffset
	}
	if q.Limit <= 0 {
		q.Limit = e.defaultLimit
	}
	if q.Limit > e.maxLimit {
		q.Limit = e.maxLimit
	}

	start := time.Now()

	if e.remote != nil {
		res, err := e.remote.Search(ctx, q)
		if err == nil {
			res.TookMs = time.Since(start).Milliseconds()
			return res, nil
		}
		log.Printf("Remote search backend failed, falling back: %v", err)
	}

	if snap := e.index.Snapshot(); snap != nil {
		res := e.searchSnapshot(snap, q)
		res.TookMs = time.Since(start).Milliseconds()
		return res, nil
	}

	res, err := e.searchFallback(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	res.TookMs = time.Since(start).Milliseconds()
	return res, nil
}

type candidate struct {
	id      uint
	matched int // distinct query terms present in any field
	score   float64
}

// searchSnapshot runs the ranked path over an immutable snapshot.
// Ordering: more distinct matched terms first, then BM25 score, then
// hadith id ascending for determinism.
func (e *Engine) searchSnapshot(snap *Snapshot, q Query) *Result {
	terms := QueryTerms(q.Text)
	res := &Result{Backend: BackendIndex, Ranked: true, Hits: []Hit{}}
	if len(terms) == 0 {
		return res
	}

	var allowed map[uint]struct{}
	if q.Book != "" {
		ids, ok := snap.BookDocs(q.Book)
		if !ok {
			return res
		}
		allowed = ids
	}
	if q.Grade != "" {
		ids, ok := snap.GradeDocs(q.Grade)
		if !ok {
			return res
		}
		allowed = intersect(allowed, ids)
	}

	n := float64(snap.Len())
	cands := make(map[uint]*candidate)
	for _, term := range terms {
		df := snap.DocFreq(term)
		if df == 0 {
			continue
		}
		idf := math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1)

		counted := make(map[uint]struct{})
		for _, p := range snap.Postings(term) {
			if allowed != nil {
				if _, ok := allowed[p.DocID]; !ok {
					continue
				}
			}
			doc := snap.Doc(p.DocID)
			c, ok := cands[p.DocID]
			if !ok {
				c = &candidate{id: p.DocID}
				cands[p.DocID] = c
			}
			if _, ok := counted[p.DocID]; !ok {
				counted[p.DocID] = struct{}{}
				c.matched++
			}

			tf := float64(p.TF)
			fieldLen := float64(doc.Lengths[p.Field])
			avg := snap.avgLen[p.Field]
			if avg == 0 {
				continue
			}
			c.score += idf * (tf * (bm25K1 + 1)) / (tf + bm25K1*(1-bm25B+bm25B*fieldLen/avg))
		}
	}

	ranked := make([]*candidate, 0, len(cands))
	for _, c := range cands {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].matched != ranked[j].matched {
			return ranked[i].matched > ranked[j].matched
		}
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})

	res.Total = len(ranked)
	for _, c := range paginate(ranked, q.Offset, q.Limit) {
		doc := snap.Doc(c.id)
		res.Hits = append(res.Hits, Hit{
			HadithID:     doc.ID,
			HadithNumber: doc.HadithNumber,
			BookSlug:     doc.BookSlug,
			BookNameEn:   doc.BookNameEn,
			BookNameAr:   doc.BookNameAr,
			ExcerptAr:    Excerpt(doc.TextAr, terms),
			ExcerptEn:    Excerpt(doc.TextEn, terms),
			Grades:       doc.Grades,
			Score:        c.score,
		})
	}
	return res
}

// intersect narrows a to the ids also present in b. A nil a means
// unconstrained, so b wins outright.
func intersect(a, b map[uint]struct{}) map[uint]struct{} {
	if a == nil {
		return b
	}
	out := make(map[uint]struct{})
	for id := range a {
		if _, ok := b[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// searchFallback is the relational path: substring containment over
// the raw corpus, ordered by hadith id, every hit carrying the
// unranked sentinel score. Limit, offset and the book filter behave
// exactly as on the ranked path.
func (e *Engine) searchFallback(q Query) (*Result, error) {
	matches, total, err := e.store.SearchSubstring(q.Text, q.Book, q.Grade, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Total:   int(total),
		Hits:    make([]Hit, 0, len(matches)),
		Backend: BackendDatabase,
	}
	terms := QueryTerms(q.Text)
	for i := range matches {
		h := &matches[i]
		hit := Hit{
			HadithID:     h.ID,
			HadithNumber: h.HadithNumber,
			BookSlug:     h.Book.Slug,
			BookNameEn:   h.Book.NameEn,
			BookNameAr:   h.Book.NameAr,
			ExcerptAr:    Excerpt(h.TextAr, terms),
			ExcerptEn:    Excerpt(h.TextEn, terms),
			Score:        UnrankedScore,
		}
		for _, g := range h.Grades {
			hit.Grades = append(hit.Grades, g.Grade)
		}
		res.Hits = append(res.Hits, hit)
	}
	return res, nil
}

func paginate(ranked []*candidate, offset, limit int) []*candidate {
	if offset >= len(ranked) {
		return nil
	}
	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[offset:end]
}

// Autocomplete page-size bounds.
const (
	autocompleteDefaultLimit = 10
	autocompleteMaxLimit     = 20
)

// Thresholds for text verification.
const (
	verifyCandidates  = 5
	verifySimilar     = 3
	verifySharedTerms = 3
)

// Autocomplete answers an as-you-type suggestion request: a regular
// search with a small, tightly capped window and no pagination.
func (e *Engine) Autocomplete(ctx context.Context, text string, limit int) (*Result, error) {
	if limit <= 0 {
		limit = autocompleteDefaultLimit
	}
	if limit > autocompleteMaxLimit {
		limit = autocompleteMaxLimit
	}
	return e.Search(ctx, Query{Text: text, Limit: limit})
}

// Verification is the outcome of checking a quoted text against the
// corpus. When Found is false, Similar carries the closest hadiths so
// the caller can still show near matches.
type Verification struct {
	Found   bool              `json:"found"`
	Query   string            `json:"query"`
	Hadith  *entities.Hadith  `json:"hadith,omitempty"`
	Similar []entities.Hadith `json:"similar_hadiths"`
	Message string            `json:"message"`
}

// Verify checks whether the given text is an authentic hadith from the
// corpus. The top candidate counts as a match when either normalized
// text contains the other, or the two share at least three stemmed
// terms. Backend outages do not fail the call: the result is simply
// unverified, with a message saying why.
func (e *Engine) Verify(ctx context.Context, text string) (*Verification, error) {
	v := &Verification{Query: text, Similar: []entities.Hadith{}}

	res, err := e.Search(ctx, Query{Text: text, Limit: verifyCandidates})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, err
		}
		v.Message = "Could not verify: search is unavailable."
		return v, nil
	}
	if len(res.Hits) == 0 {
		v.Message = "No matching hadith found."
		return v, nil
	}

	best, err := e.store.GetByID(res.Hits[0].HadithID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate hadith: %w", err)
	}
	if verifyMatches(text, best.TextAr) || verifyMatches(text, best.TextEn) {
		v.Found = true
		v.Hadith = best
		v.Message = "Hadith found and verified."
		return v, nil
	}

	for _, hit := range res.Hits {
		if len(v.Similar) == verifySimilar {
			break
		}
		h, err := e.store.GetByID(hit.HadithID)
		if err != nil {
			continue
		}
		v.Similar = append(v.Similar, *h)
	}
	v.Message = "Exact match not found; returning similar hadiths."
	return v, nil
}

func verifyMatches(query, candidate string) bool {
	nq := arabic.Normalize(strings.ToLower(query))
	nc := arabic.Normalize(strings.ToLower(candidate))
	if nq == "" || nc == "" {
		return false
	}
	if strings.Contains(nc, nq) || strings.Contains(nq, nc) {
		return true
	}
	seen := make(map[string]struct{})
	for _, t := range QueryTerms(candidate) {
		seen[t] = struct{}{}
	}
	shared := 0
	for _, t := range QueryTerms(query) {
		if _, ok := seen[t]; ok {
			shared++
		}
	}
	return shared >= verifySharedTerms
}

// IndexedDocuments reports the size of the published snapshot; ok is
// false before the first rebuild completes.
func (e *Engine) IndexedDocuments() (int, bool) {
	snap := e.index.Snapshot()
	if snap == nil {
		return 0, false
	}
	return snap.Len(), true
}
