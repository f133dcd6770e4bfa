package metrics

import (
	"sync"
	"time"
)

// Metrics collects counters for one pipeline process. Counters accumulate
// across runs within the same process lifetime.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	ItemsCollected      int64
	DuplicatesFiltered  int64
	ItemsEnriched       int64
	EnrichmentFallbacks int64
	ItemsDropped        int64
	ArticlesGenerated   int64
	GenerationFailures  int64
	PagesWritten        int64

	// Timings
	LastRunDuration    time.Duration
	TotalRunDuration   time.Duration
	AverageRunDuration time.Duration
	RunCount           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddItemsCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsCollected += int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementItemsEnriched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsEnriched++
}

func (m *Metrics) IncrementEnrichmentFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnrichmentFallbacks++
}

func (m *Metrics) IncrementItemsDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsDropped++
}

func (m *Metrics) IncrementArticlesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesGenerated++
}

func (m *Metrics) IncrementGenerationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationFailures++
}

func (m *Metrics) AddPagesWritten(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PagesWritten += int64(n)
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++

	if m.RunCount > 0 {
		m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"items_collected":         m.ItemsCollected,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"items_enriched":          m.ItemsEnriched,
		"enrichment_fallbacks":    m.EnrichmentFallbacks,
		"items_dropped":           m.ItemsDropped,
		"articles_generated":      m.ArticlesGenerated,
		"generation_failures":     m.GenerationFailures,
		"pages_written":           m.PagesWritten,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
