// Package enrich obtains verifiable full-text content for a candidate
// before generation, falling back to web-search snippets when full-text
// extraction is insufficient.
package enrich

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/autodiario/diario/internal/cache"
	"github.com/autodiario/diario/internal/config"
	"github.com/autodiario/diario/internal/feeds"
	"github.com/autodiario/diario/internal/logger"
	"github.com/autodiario/diario/internal/metrics"
	"github.com/autodiario/diario/internal/retry"
)

// BodySource tells where an item's body text came from.
type BodySource string

const (
	SourceFullExtract    BodySource = "full_extract"
	SourceSearchFallback BodySource = "search_fallback"
)

// Enriched is a candidate whose body text is guaranteed to meet the minimum
// length threshold.
type Enriched struct {
	feeds.Candidate
	BodyText   string
	BodySource BodySource
}

// Extractor is the full-text extraction capability.
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Searcher is the web-search capability.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]Result, error)
}

type Enricher struct {
	cfg       *config.Config
	extractor Extractor
	searcher  Searcher
	memo      *cache.Cache
}

func NewEnricher(cfg *config.Config) *Enricher {
	client := &http.Client{Timeout: cfg.RequestTimeout}
	retryCfg := retry.Config{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}
	return &Enricher{
		cfg:       cfg,
		extractor: NewHTTPExtractor(client, retryCfg),
		searcher:  NewDuckDuckGo(client, cfg.SearchRegion),
		memo:      cache.New(),
	}
}

// NewEnricherWith injects the capabilities, for tests.
func NewEnricherWith(cfg *config.Config, ex Extractor, se Searcher) *Enricher {
	return &Enricher{cfg: cfg, extractor: ex, searcher: se, memo: cache.New()}
}

// Enrich returns the candidate with verified body text, or false when
// neither extraction nor search produced enough context. Candidates for
// which it returns false must be dropped, never generated from.
func (e *Enricher) Enrich(ctx context.Context, cand feeds.Candidate) (*Enriched, bool) {
	if body, ok := e.extractBody(ctx, cand.SourceURL); ok {
		metrics.Global.IncrementItemsEnriched()
		return &Enriched{Candidate: cand, BodyText: body, BodySource: SourceFullExtract}, true
	}

	if body, ok := e.searchBody(ctx, cand); ok {
		metrics.Global.IncrementItemsEnriched()
		metrics.Global.IncrementEnrichmentFallbacks()
		return &Enriched{Candidate: cand, BodyText: body, BodySource: SourceSearchFallback}, true
	}

	logger.Warn("insufficient content, dropping candidate", "title", cand.Title)
	metrics.Global.IncrementItemsDropped()
	return nil, false
}

func (e *Enricher) extractBody(ctx context.Context, url string) (string, bool) {
	key := cache.Key("extract", url)
	if body, hit := e.memo.Get(key); hit {
		return body, e.longEnough(body)
	}

	body, err := e.extractor.Extract(ctx, url)
	if err != nil {
		logger.Debug("extraction failed", "url", url, "error", err)
		return "", false
	}
	e.memo.Set(key, body, time.Hour)

	if !e.longEnough(body) {
		logger.Debug("extracted body too short", "url", url, "chars", utf8.RuneCountInString(body))
		return "", false
	}
	return body, true
}

func (e *Enricher) searchBody(ctx context.Context, cand feeds.Candidate) (string, bool) {
	query := cand.Title
	if section := e.cfg.SectionByName(cand.Section); section != nil && section.SearchHint != "" {
		query += " " + section.SearchHint
	}

	results, err := e.searcher.Search(ctx, query, e.cfg.SearchResults)
	if err != nil {
		logger.Debug("search fallback failed", "query", query, "error", err)
		return "", false
	}

	snippets := make([]string, 0, len(results))
	for _, r := range results {
		snippets = append(snippets, r.Snippet)
	}
	body := strings.Join(snippets, "\n\n")
	if !e.longEnough(body) {
		return "", false
	}
	return body, true
}

func (e *Enricher) longEnough(body string) bool {
	return utf8.RuneCountInString(body) >= e.cfg.MinBodyChars
}
