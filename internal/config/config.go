// Package config loads the editorial pipeline configuration from YAML plus
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ModelRef identifies one backend in the generation cascade, in priority order.
type ModelRef struct {
	Provider string `yaml:"provider"` // "gemini" or "openai"
	Name     string `yaml:"name"`
}

// Section is one editorial section with its ordered feed list.
type Section struct {
	Name         string   `yaml:"name"`
	Feeds        []string `yaml:"feeds"`
	DefaultImage string   `yaml:"default_image"`
	SearchHint   string   `yaml:"search_hint"` // appended to fallback search queries
}

type Config struct {
	// Site settings
	SiteTitle        string    `yaml:"site_title"`
	Tagline          string    `yaml:"tagline"`
	OutputDir        string    `yaml:"output_dir"`
	PlaceholderImage string    `yaml:"placeholder_image"`
	Sections         []Section `yaml:"sections"`

	// Generation settings
	Models         []ModelRef `yaml:"models"`
	Temperature    float32    `yaml:"temperature"`
	MaxPromptChars int        `yaml:"max_prompt_chars"`
	BackendBudget  int        `yaml:"backend_budget"` // max calls per backend per run (0 = unlimited)
	InterCallDelay time.Duration

	// Aggregation settings
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	PerFeedLimit        int     `yaml:"per_feed_limit"`
	MaxArticles         int     `yaml:"max_articles"`

	// Enrichment settings
	MinBodyChars  int    `yaml:"min_body_chars"`
	SearchResults int    `yaml:"search_results"`
	SearchRegion  string `yaml:"search_region"`

	// API keys (environment only, never in the YAML file)
	GeminiAPIKey string `yaml:"-"`
	OpenAIAPIKey string `yaml:"-"`

	// App settings
	Debug          bool `yaml:"-"`
	RequestTimeout time.Duration
	RetryAttempts  int `yaml:"retry_attempts"`
	RetryDelay     time.Duration

	// Raw durations as seconds/millis in YAML
	InterCallDelayMS int `yaml:"inter_call_delay_ms"`
	RequestTimeoutS  int `yaml:"request_timeout_s"`
	RetryDelayS      int `yaml:"retry_delay_s"`
}

// Load reads the YAML config at path, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{
		// Default values
		SiteTitle:           "El Diario Autónomo",
		Tagline:             "Escrito, editado y dirigido por Inteligencia Artificial",
		OutputDir:           "public",
		PlaceholderImage:    "https://placehold.co/800x400?text=Diario",
		Temperature:         0.2,
		MaxPromptChars:      6000,
		BackendBudget:       0,
		InterCallDelayMS:    2000,
		SimilarityThreshold: 0.65,
		PerFeedLimit:        3,
		MaxArticles:         8,
		MinBodyChars:        250,
		SearchResults:       4,
		SearchRegion:        "es-es",
		RequestTimeoutS:     30,
		RetryAttempts:       3,
		RetryDelayS:         5,
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Load from environment
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}
	cfg.MaxArticles = getEnvIntOrDefault("MAX_ARTICLES", cfg.MaxArticles)
	cfg.PerFeedLimit = getEnvIntOrDefault("PER_FEED_LIMIT", cfg.PerFeedLimit)
	cfg.BackendBudget = getEnvIntOrDefault("BACKEND_BUDGET", cfg.BackendBudget)
	cfg.InterCallDelayMS = getEnvIntOrDefault("INTER_CALL_DELAY_MS", cfg.InterCallDelayMS)

	cfg.InterCallDelay = time.Duration(cfg.InterCallDelayMS) * time.Millisecond
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutS) * time.Second
	cfg.RetryDelay = time.Duration(cfg.RetryDelayS) * time.Second

	return cfg, cfg.Validate()
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue >= 0 {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("at least one section is required")
	}
	for _, s := range c.Sections {
		if s.Name == "" {
			return fmt.Errorf("section without a name")
		}
		if len(s.Feeds) == 0 {
			return fmt.Errorf("section %q has no feeds", s.Name)
		}
	}
	if len(c.Models) == 0 {
		return fmt.Errorf("at least one model is required")
	}
	for _, m := range c.Models {
		switch m.Provider {
		case "gemini":
			if c.GeminiAPIKey == "" {
				return fmt.Errorf("model %s requires GEMINI_API_KEY", m.Name)
			}
		case "openai":
			if c.OpenAIAPIKey == "" {
				return fmt.Errorf("model %s requires OPENAI_API_KEY", m.Name)
			}
		default:
			return fmt.Errorf("unknown model provider %q", m.Provider)
		}
		if m.Name == "" {
			return fmt.Errorf("model with provider %s has no name", m.Provider)
		}
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0, 1], got %v", c.SimilarityThreshold)
	}
	if c.MinBodyChars <= 0 {
		return fmt.Errorf("min_body_chars must be positive")
	}
	if c.MaxArticles <= 0 {
		return fmt.Errorf("max_articles must be positive")
	}
	return nil
}

// SectionNames returns the configured section names in display order.
func (c *Config) SectionNames() []string {
	names := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		names[i] = s.Name
	}
	return names
}

// SectionByName returns the section config for name, or nil.
func (c *Config) SectionByName(name string) *Section {
	for i := range c.Sections {
		if c.Sections[i].Name == name {
			return &c.Sections[i]
		}
	}
	return nil
}
