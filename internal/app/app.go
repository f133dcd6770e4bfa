// Package app sequences one pipeline run: collect, enrich, generate,
// assemble. Per-item failures are contained; only a zero-output run is
// fatal, and even then the previously published site is left untouched.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/autodiario/diario/internal/config"
	"github.com/autodiario/diario/internal/enrich"
	"github.com/autodiario/diario/internal/feeds"
	"github.com/autodiario/diario/internal/generate"
	"github.com/autodiario/diario/internal/logger"
	"github.com/autodiario/diario/internal/metrics"
	"github.com/autodiario/diario/internal/site"
)

// Pipeline holds the run's stage functions. Production wiring comes from
// newPipeline; tests swap in fakes.
type Pipeline struct {
	Collect  func(ctx context.Context) []feeds.Candidate
	Enrich   func(ctx context.Context, c feeds.Candidate) (*enrich.Enriched, bool)
	Generate func(ctx context.Context, e *enrich.Enriched) (*generate.Article, bool)
	Assemble func(date time.Time, articles []generate.Article) (*site.Edition, error)
	Now      func() time.Time
}

// Run executes one full pipeline pass with the production components.
func Run(ctx context.Context, cfg *config.Config) error {
	engine, err := generate.NewEngine(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build generation engine: %w", err)
	}
	defer engine.Close()

	aggregator := feeds.NewAggregator(cfg)
	enricher := enrich.NewEnricher(cfg)
	assembler := site.NewAssembler(cfg)

	p := &Pipeline{
		Collect:  aggregator.Collect,
		Enrich:   enricher.Enrich,
		Generate: engine.Generate,
		Assemble: assembler.Assemble,
		Now:      time.Now,
	}
	return p.Run(ctx)
}

// Run drives the pipeline stages in order.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.Global.RecordRunDuration(time.Since(start))
	}()

	candidates := p.Collect(ctx)
	logger.Info("run started", "candidates", len(candidates))

	var articles []generate.Article
	for _, cand := range candidates {
		enriched, ok := p.Enrich(ctx, cand)
		if !ok {
			continue
		}
		article, ok := p.Generate(ctx, enriched)
		if !ok {
			continue
		}
		articles = append(articles, *article)
	}

	if len(articles) == 0 {
		// The previously published root index stays as it was. Writing
		// an empty edition over it is the one failure mode the site
		// must never exhibit.
		err := fmt.Errorf("run produced zero articles, previous edition preserved")
		metrics.Global.SetError(err.Error())
		return err
	}

	edition, err := p.Assemble(p.Now(), articles)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("assemble edition: %w", err)
	}

	metrics.Global.SetLastRun()
	logger.Info("run finished", "articles", len(edition.Articles), "dir", edition.OutputDir)
	return nil
}
