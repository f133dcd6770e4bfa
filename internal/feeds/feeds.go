// Package feeds aggregates candidate items from the configured section
// feeds, deduplicating near-identical headlines and ranking the working set.
package feeds

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/autodiario/diario/internal/config"
	"github.com/autodiario/diario/internal/logger"
	"github.com/autodiario/diario/internal/metrics"
)

// Candidate is one feed entry considered for publication.
type Candidate struct {
	Title      string
	SourceURL  string
	Section    string
	ImageURL   string // never empty: feed image, section default, or placeholder
	RawSummary string
	FeedImage  bool // true when ImageURL came from the entry itself
}

// Parser is the feed-fetching capability. *gofeed.Parser satisfies it.
type Parser interface {
	ParseURLWithContext(feedURL string, ctx context.Context) (*gofeed.Feed, error)
}

// Aggregator collects and filters candidates per the configured sections.
type Aggregator struct {
	cfg    *config.Config
	parser Parser
}

func NewAggregator(cfg *config.Config) *Aggregator {
	return &Aggregator{cfg: cfg, parser: gofeed.NewParser()}
}

// NewAggregatorWithParser injects a parser, for tests.
func NewAggregatorWithParser(cfg *config.Config, p Parser) *Aggregator {
	return &Aggregator{cfg: cfg, parser: p}
}

// Collect fetches every configured feed and returns the deduplicated,
// ranked working set. Individual feed failures are logged and skipped.
func (a *Aggregator) Collect(ctx context.Context) []Candidate {
	var accepted []Candidate

	for _, section := range a.cfg.Sections {
		before := len(accepted)
		for _, feedURL := range section.Feeds {
			feedCtx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
			feed, err := a.parser.ParseURLWithContext(feedURL, feedCtx)
			cancel()
			if err != nil {
				logger.Warn("feed fetch failed, skipping", "section", section.Name, "url", feedURL, "error", err)
				continue
			}

			taken := 0
			for _, item := range feed.Items {
				if taken >= a.cfg.PerFeedLimit {
					break
				}
				cand, ok := a.makeCandidate(item, section)
				if !ok {
					continue
				}
				if a.isDuplicate(cand.Title, accepted) {
					logger.Debug("duplicate headline rejected", "title", cand.Title)
					metrics.Global.IncrementDuplicatesFiltered()
					continue
				}
				accepted = append(accepted, cand)
				taken++
			}
			logger.Debug("feed processed", "url", feedURL, "entries", len(feed.Items), "taken", taken)
		}
		if len(accepted) == before {
			logger.Warn("section yielded nothing", "section", section.Name)
		}
	}

	accepted = rankAndTruncate(accepted, a.cfg.MaxArticles)
	metrics.Global.AddItemsCollected(len(accepted))
	logger.Info("aggregation complete", "candidates", len(accepted))
	return accepted
}

func (a *Aggregator) makeCandidate(item *gofeed.Item, section config.Section) (Candidate, bool) {
	title := strings.TrimSpace(item.Title)
	if title == "" || item.Link == "" {
		return Candidate{}, false
	}

	img := discoverImage(item)
	fromFeed := img != ""
	if img == "" {
		img = section.DefaultImage
	}
	if img == "" {
		img = a.cfg.PlaceholderImage
	}

	return Candidate{
		Title:      title,
		SourceURL:  item.Link,
		Section:    section.Name,
		ImageURL:   img,
		RawSummary: stripTags(item.Description),
		FeedImage:  fromFeed,
	}, true
}

func (a *Aggregator) isDuplicate(title string, accepted []Candidate) bool {
	for _, prev := range accepted {
		if Similarity(title, prev.Title) > a.cfg.SimilarityThreshold {
			return true
		}
	}
	return false
}

// rankAndTruncate puts candidates with a feed-supplied image first, keeping
// feed order within each class, then caps the working set.
func rankAndTruncate(cands []Candidate, max int) []Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].FeedImage && !cands[j].FeedImage
	})
	if max > 0 && len(cands) > max {
		cands = cands[:max]
	}
	return cands
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
