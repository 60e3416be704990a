// Package meili implements the dedicated search-engine backend on top
// of Meilisearch. It satisfies search.RemoteBackend: any transport or
// server failure surfaces as search.ErrBackendUnavailable so the query
// engine falls back to its local index instead of failing the request.
package meili

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"github.com/alhifz/hifz/internal/arabic"
	"github.com/alhifz/hifz/internal/entities"
	"github.com/alhifz/hifz/internal/search"
)

const (
	defaultTimeout = 5 * time.Second
	indexBatchSize = 1000
)

// Client talks to a Meilisearch server holding the hadiths index.
type Client struct {
	manager meilisearch.ServiceManager
	index   meilisearch.IndexManager
	uid     string
	timeout time.Duration
}

// Config carries the connection settings.
type Config struct {
	URL     string
	APIKey  string
	Index   string
	Timeout time.Duration
}

// NewClient creates a Meilisearch backend client. It does not dial;
// availability is probed per request with a bounded timeout.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	uid := cfg.Index
	if uid == "" {
		uid = "hadiths"
	}

	opts := []meilisearch.Option{
		meilisearch.WithCustomClient(&http.Client{Timeout: timeout}),
	}
	if cfg.APIKey != "" {
		opts = append(opts, meilisearch.WithAPIKey(cfg.APIKey))
	}
	manager := meilisearch.New(cfg.URL, opts...)

	return &Client{
		manager: manager,
		index:   manager.Index(uid),
		uid:     uid,
		timeout: timeout,
	}
}

// document is the shape pushed into the Meilisearch index. The
// de-vocalized copy of the Arabic text is what makes bare queries
// match fully vocalized hadiths.
type document struct {
	ID               uint     `json:"id"`
	HadithNumber     int      `json:"hadith_number"`
	TextAr           string   `json:"text_ar"`
	TextArNormalized string   `json:"text_ar_normalized"`
	TextEn           string   `json:"text_en,omitempty"`
	NarratorEn       string   `json:"narrator_en,omitempty"`
	BookSlug         string   `json:"book_slug"`
	BookNameEn       string   `json:"book_name_en"`
	BookNameAr       string   `json:"book_name_ar"`
	Grades           []string `json:"grades,omitempty"`
}

type formatted struct {
	TextAr string `json:"text_ar"`
	TextEn string `json:"text_en"`
}

type hitDocument struct {
	document
	Formatted *formatted `json:"_formatted,omitempty"`
	Score     float64    `json:"_rankingScore,omitempty"`
}

// Search queries the remote index. The query is de-vocalized first,
// mirroring what IndexCorpus stored.
func (c *Client) Search(ctx context.Context, q search.Query) (*search.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &meilisearch.SearchRequest{
		Limit:                 int64(q.Limit),
		Offset:                int64(q.Offset),
		AttributesToHighlight: []string{"text_ar", "text_en"},
		HighlightPreTag:       "<mark>",
		HighlightPostTag:      "</mark>",
		ShowRankingScore:      true,
	}
	var filters []string
	if q.Book != "" {
		filters = append(filters, fmt.Sprintf("book_slug = %q", q.Book))
	}
	if q.Grade != "" {
		filters = append(filters, fmt.Sprintf("grades = %q", strings.ToLower(q.Grade)))
	}
	if len(filters) > 0 {
		req.Filter = strings.Join(filters, " AND ")
	}

	resp, err := c.index.SearchWithContext(ctx, arabic.Normalize(q.Text), req)
	if err != nil {
		return nil, fmt.Errorf("%w: meilisearch: %v", search.ErrBackendUnavailable, err)
	}

	result := &search.Result{
		Total:   int(resp.EstimatedTotalHits),
		Hits:    make([]search.Hit, 0, len(resp.Hits)),
		Backend: search.BackendMeilisearch,
		Ranked:  true,
	}
	for _, raw := range resp.Hits {
		var doc hitDocument
		if err := decodeHit(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: meilisearch: malformed hit: %v", search.ErrBackendUnavailable, err)
		}
		hit := search.Hit{
			HadithID:     doc.ID,
			HadithNumber: doc.HadithNumber,
			BookSlug:     doc.BookSlug,
			BookNameEn:   doc.BookNameEn,
			BookNameAr:   doc.BookNameAr,
			ExcerptAr:    doc.TextAr,
			ExcerptEn:    doc.TextEn,
			Grades:       doc.Grades,
			Score:        doc.Score,
		}
		if doc.Formatted != nil {
			if doc.Formatted.TextAr != "" {
				hit.ExcerptAr = doc.Formatted.TextAr
			}
			if doc.Formatted.TextEn != "" {
				hit.ExcerptEn = doc.Formatted.TextEn
			}
		}
		result.Hits = append(result.Hits, hit)
	}
	return result, nil
}

// IndexCorpus replaces the remote index content with the given corpus
// and configures the index settings (idempotent on the server side).
func (c *Client) IndexCorpus(ctx context.Context, corpus []entities.Hadith) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.manager.HealthWithContext(ctx); err != nil {
		return fmt.Errorf("%w: meilisearch: %v", search.ErrBackendUnavailable, err)
	}

	settings := &meilisearch.Settings{
		SearchableAttributes: []string{"text_ar", "text_ar_normalized", "text_en", "narrator_en"},
		FilterableAttributes: []string{"book_slug", "grades"},
		SortableAttributes:   []string{"hadith_number", "book_slug"},
	}
	if _, err := c.index.UpdateSettingsWithContext(ctx, settings); err != nil {
		return fmt.Errorf("%w: meilisearch: update settings: %v", search.ErrBackendUnavailable, err)
	}

	docs := make([]document, 0, len(corpus))
	for i := range corpus {
		h := &corpus[i]
		doc := document{
			ID:               h.ID,
			HadithNumber:     h.HadithNumber,
			TextAr:           h.TextAr,
			TextArNormalized: arabic.Normalize(h.TextAr),
			TextEn:           h.TextEn,
			NarratorEn:       h.NarratorEn,
			BookSlug:         h.Book.Slug,
			BookNameEn:       h.Book.NameEn,
			BookNameAr:       h.Book.NameAr,
		}
		// Grades are stored lowercased so the filter can match
		// case-insensitively.
		for _, g := range h.Grades {
			doc.Grades = append(doc.Grades, strings.ToLower(g.Grade))
		}
		docs = append(docs, doc)
	}

	for start := 0; start < len(docs); start += indexBatchSize {
		end := start + indexBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]
		if _, err := c.index.AddDocumentsWithContext(ctx, &batch); err != nil {
			return fmt.Errorf("%w: meilisearch: add documents: %v", search.ErrBackendUnavailable, err)
		}
	}
	return nil
}

func decodeHit(raw interface{}, dst *hitDocument) error {
	buf, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, dst)
}
