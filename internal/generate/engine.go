// Package generate renders articles through a prioritized cascade of model
// backends with quota-aware fallback and structured-output recovery.
package generate

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/autodiario/diario/internal/config"
	"github.com/autodiario/diario/internal/enrich"
	"github.com/autodiario/diario/internal/logger"
	"github.com/autodiario/diario/internal/metrics"
	"github.com/autodiario/diario/internal/ratelimit"
)

// Article is a fully generated, structurally valid piece. All text fields
// are non-empty; Body is Markdown.
type Article struct {
	Headline    string
	Dek         string
	Body        string
	Section     string
	AuthorLabel string
	ImageURL    string
	SourceURL   string
}

// Engine drives the model cascade. Backends are tried strictly in order;
// the same backend is never retried within one item.
type Engine struct {
	backends       []Backend
	limiter        *ratelimit.Limiter
	temperature    float32
	maxPromptChars int
	backoff        time.Duration
	callTimeout    time.Duration

	// sleep is replaceable in tests
	sleep func(ctx context.Context, d time.Duration)
}

// NewEngine builds the cascade from the configured model list.
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	backends := make([]Backend, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		switch m.Provider {
		case "gemini":
			b, err := NewGeminiBackend(ctx, cfg.GeminiAPIKey, m.Name)
			if err != nil {
				return nil, fmt.Errorf("backend %s/%s: %w", m.Provider, m.Name, err)
			}
			backends = append(backends, b)
		case "openai":
			backends = append(backends, NewOpenAIBackend(cfg.OpenAIAPIKey, m.Name))
		default:
			return nil, fmt.Errorf("unknown model provider %q", m.Provider)
		}
	}
	return &Engine{
		backends:       backends,
		limiter:        ratelimit.New(cfg.InterCallDelay, cfg.BackendBudget),
		temperature:    cfg.Temperature,
		maxPromptChars: cfg.MaxPromptChars,
		backoff:        time.Second,
		callTimeout:    cfg.RequestTimeout,
		sleep:          sleepCtx,
	}, nil
}

// NewEngineWithBackends injects the cascade directly, for tests.
func NewEngineWithBackends(backends []Backend, limiter *ratelimit.Limiter, temperature float32, maxPromptChars int) *Engine {
	return &Engine{
		backends:       backends,
		limiter:        limiter,
		temperature:    temperature,
		maxPromptChars: maxPromptChars,
		backoff:        0,
		sleep:          sleepCtx,
	}
}

// Generate writes one article from an enriched item. Returns false when the
// cascade was exhausted or the winning model's output could not be recovered
// into a complete record. No error ever propagates past this boundary.
func (e *Engine) Generate(ctx context.Context, item *enrich.Enriched) (*Article, bool) {
	prompt := BuildPrompt(item.Section, item.Title, item.BodyText, e.maxPromptChars)
	opts := Options{Temperature: e.temperature, JSONResponse: true}

	for _, backend := range e.backends {
		if err := e.limiter.Acquire(ctx, backend.Name()); err != nil {
			logger.Warn("backend unavailable", "backend", backend.Name(), "error", err)
			continue
		}

		out, err := e.callBackend(ctx, backend, prompt, opts)
		if err != nil {
			logger.Warn("backend failed, advancing cascade",
				"backend", backend.Name(), "kind", KindOf(err).String(), "error", err)
			e.sleep(ctx, e.backoff)
			continue
		}

		rec, err := RecoverRecord(out)
		if err != nil {
			// Malformed output discards the item outright. Re-asking
			// another model would double quota spend for prose the
			// first model already produced.
			logger.Warn("unrecoverable model output, dropping item",
				"backend", backend.Name(), "title", item.Title, "error", err)
			metrics.Global.IncrementGenerationFailures()
			return nil, false
		}

		logger.Info("article generated", "backend", backend.Name(), "headline", rec.Headline)
		metrics.Global.IncrementArticlesGenerated()
		return &Article{
			Headline:    rec.Headline,
			Dek:         rec.Dek,
			Body:        rec.Body,
			Section:     item.Section,
			AuthorLabel: rec.Author,
			ImageURL:    item.ImageURL,
			SourceURL:   item.SourceURL,
		}, true
	}

	logger.Warn("model cascade exhausted, dropping item", "title", item.Title)
	metrics.Global.IncrementGenerationFailures()
	return nil, false
}

// callBackend bounds one model call so a hung transport cannot stall the
// whole run.
func (e *Engine) callBackend(ctx context.Context, backend Backend, prompt string, opts Options) (string, error) {
	if e.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.callTimeout)
		defer cancel()
	}
	return backend.Generate(ctx, prompt, opts)
}

// Close releases backend clients that hold connections.
func (e *Engine) Close() {
	for _, b := range e.backends {
		if c, ok := b.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
