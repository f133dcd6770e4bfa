package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
site_title: "Diario de Prueba"
similarity_threshold: 0.7
max_articles: 5
sections:
  - name: politica
    feeds: ["https://feed.example/politica"]
    search_hint: "partido político elecciones gobierno"
models:
  - provider: gemini
    name: "gemini-2.5-flash"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("MAX_ARTICLES", "")

	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.SiteTitle != "Diario de Prueba" {
		t.Errorf("SiteTitle = %q", cfg.SiteTitle)
	}
	if cfg.SimilarityThreshold != 0.7 {
		t.Errorf("SimilarityThreshold = %v", cfg.SimilarityThreshold)
	}
	if cfg.MaxArticles != 5 {
		t.Errorf("MaxArticles = %v", cfg.MaxArticles)
	}
	// Defaults survive when the file does not set them.
	if cfg.MinBodyChars != 250 {
		t.Errorf("MinBodyChars default = %v", cfg.MinBodyChars)
	}
	if cfg.OutputDir != "public" {
		t.Errorf("OutputDir default = %q", cfg.OutputDir)
	}
	if cfg.InterCallDelay.Milliseconds() != 2000 {
		t.Errorf("InterCallDelay default = %v", cfg.InterCallDelay)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("OUTPUT_DIR", "/tmp/otro")
	t.Setenv("MAX_ARTICLES", "3")

	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputDir != "/tmp/otro" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.MaxArticles != 3 {
		t.Errorf("MaxArticles = %v", cfg.MaxArticles)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := Load(writeConfig(t, testYAML)); err == nil {
		t.Fatal("gemini model without GEMINI_API_KEY should fail validation")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Sections:            []Section{{Name: "politica", Feeds: []string{"u"}}},
			Models:              []ModelRef{{Provider: "gemini", Name: "m"}},
			GeminiAPIKey:        "k",
			SimilarityThreshold: 0.65,
			MinBodyChars:        200,
			MaxArticles:         8,
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no sections", func(c *Config) { c.Sections = nil }},
		{"section without feeds", func(c *Config) { c.Sections[0].Feeds = nil }},
		{"no models", func(c *Config) { c.Models = nil }},
		{"unknown provider", func(c *Config) { c.Models[0].Provider = "laplace" }},
		{"threshold above 1", func(c *Config) { c.SimilarityThreshold = 1.2 }},
		{"threshold zero", func(c *Config) { c.SimilarityThreshold = 0 }},
		{"zero min body", func(c *Config) { c.MinBodyChars = 0 }},
	}
	for _, tc := range cases {
		cfg := base()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: want validation error", tc.name)
		}
	}
}

func TestSectionByName(t *testing.T) {
	cfg := &Config{Sections: []Section{{Name: "politica", SearchHint: "gobierno"}}}
	if s := cfg.SectionByName("politica"); s == nil || s.SearchHint != "gobierno" {
		t.Errorf("SectionByName(politica) = %+v", s)
	}
	if s := cfg.SectionByName("deportes"); s != nil {
		t.Errorf("unknown section should return nil, got %+v", s)
	}
}
