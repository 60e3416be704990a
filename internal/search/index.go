package search

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/alhifz/hifz/internal/entities"
)

// Field identifies which hadith text field a posting came from.
type Field uint8

const (
	FieldArabic Field = iota
	FieldEnglish
	FieldNarrator
	numFields
)

// Posting links a term to one document field with its term frequency.
type Posting struct {
	DocID uint
	Field Field
	TF    int
}

// Document is the per-hadith metadata kept inside a snapshot so that
// queries resolve results without touching the database.
type Document struct {
	ID           uint
	HadithNumber int
	BookID       uint
	BookSlug     string
	BookNameEn   string
	BookNameAr   string
	TextAr       string
	TextEn       string
	NarratorEn   string
	Grades       []string

	// Token count per field, for length normalization.
	Lengths [numFields]int
}

// Snapshot is one immutable, fully-built version of the inverted
// index. Readers hold a snapshot pointer for the duration of a query;
// a concurrent rebuild never mutates it.
type Snapshot struct {
	postings map[string][]Posting
	docFreq  map[string]int // term -> distinct documents containing it
	docs     map[uint]*Document
	byBook   map[string]map[uint]struct{} // book slug -> doc ids
	byGrade  map[string]map[uint]struct{} // lowercased grade -> doc ids
	avgLen   [numFields]float64
	docCount int
}

// BuildSnapshot constructs a snapshot from the full corpus in
// O(total token count). An empty corpus yields a valid snapshot that
// matches nothing.
func BuildSnapshot(corpus []entities.Hadith) *Snapshot {
	snap := &Snapshot{
		postings: make(map[string][]Posting),
		docFreq:  make(map[string]int),
		docs:     make(map[uint]*Document, len(corpus)),
		byBook:   make(map[string]map[uint]struct{}),
		byGrade:  make(map[string]map[uint]struct{}),
	}

	var totalLen [numFields]int
	for i := range corpus {
		h := &corpus[i]
		doc := &Document{
			ID:           h.ID,
			HadithNumber: h.HadithNumber,
			BookID:       h.BookID,
			BookSlug:     h.Book.Slug,
			BookNameEn:   h.Book.NameEn,
			BookNameAr:   h.Book.NameAr,
			TextAr:       h.TextAr,
			TextEn:       h.TextEn,
			NarratorEn:   h.NarratorEn,
		}
		for _, g := range h.Grades {
			doc.Grades = append(doc.Grades, g.Grade)
		}

		fieldTexts := [numFields]string{
			FieldArabic:   h.TextAr,
			FieldEnglish:  h.TextEn,
			FieldNarrator: h.NarratorEn,
		}
		seen := make(map[string]struct{})
		for field := Field(0); field < numFields; field++ {
			text := fieldTexts[field]
			freqs := make(map[string]int)
			tokens := Tokenize(text)
			for _, t := range tokens {
				freqs[t.Term]++
			}
			doc.Lengths[field] = len(tokens)
			totalLen[field] += len(tokens)
			for term, tf := range freqs {
				snap.postings[term] = append(snap.postings[term], Posting{DocID: h.ID, Field: field, TF: tf})
				if _, ok := seen[term]; !ok {
					seen[term] = struct{}{}
					snap.docFreq[term]++
				}
			}
		}

		snap.docs[h.ID] = doc
		if doc.BookSlug != "" {
			ids, ok := snap.byBook[doc.BookSlug]
			if !ok {
				ids = make(map[uint]struct{})
				snap.byBook[doc.BookSlug] = ids
			}
			ids[h.ID] = struct{}{}
		}
		for _, grade := range doc.Grades {
			key := strings.ToLower(grade)
			ids, ok := snap.byGrade[key]
			if !ok {
				ids = make(map[uint]struct{})
				snap.byGrade[key] = ids
			}
			ids[h.ID] = struct{}{}
		}
		snap.docCount++
	}

	if snap.docCount > 0 {
		for f := Field(0); f < numFields; f++ {
			snap.avgLen[f] = float64(totalLen[f]) / float64(snap.docCount)
		}
	}
	return snap
}

// Postings returns all postings for a normalized term, or nil.
func (s *Snapshot) Postings(term string) []Posting {
	return s.postings[term]
}

// DocFreq returns how many documents contain the term.
func (s *Snapshot) DocFreq(term string) int {
	return s.docFreq[term]
}

// Doc returns the stored metadata for a document id.
func (s *Snapshot) Doc(id uint) *Document {
	return s.docs[id]
}

// BookDocs returns the document id set for a book slug. The second
// return is false for a slug absent from the corpus.
func (s *Snapshot) BookDocs(slug string) (map[uint]struct{}, bool) {
	ids, ok := s.byBook[slug]
	return ids, ok
}

// GradeDocs returns the document id set for a grade, matched
// case-insensitively. The second return is false for a grade no
// document carries.
func (s *Snapshot) GradeDocs(grade string) (map[uint]struct{}, bool) {
	ids, ok := s.byGrade[strings.ToLower(grade)]
	return ids, ok
}

// Len returns the number of indexed documents.
func (s *Snapshot) Len() int {
	return s.docCount
}

// Index owns the active snapshot. Reads are lock-free: queries load
// the pointer once and keep using that snapshot even while a rebuild
// publishes a new one. Rebuilds are serialized by a mutex, so
// concurrent rebuild calls queue rather than race.
type Index struct {
	current   atomic.Pointer[Snapshot]
	rebuildMu sync.Mutex
}

func NewIndex() *Index {
	return &Index{}
}

// Snapshot returns the active snapshot, or nil before the first
// rebuild completes.
func (i *Index) Snapshot() *Snapshot {
	return i.current.Load()
}

// Rebuild constructs a new snapshot off to the side and publishes it
// with a single atomic swap. In-flight queries continue against the
// previous snapshot. Returns the published snapshot.
func (i *Index) Rebuild(corpus []entities.Hadith) *Snapshot {
	i.rebuildMu.Lock()
	defer i.rebuildMu.Unlock()

	snap := BuildSnapshot(corpus)
	i.current.Store(snap)
	return snap
}
