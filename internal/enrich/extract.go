package enrich

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/autodiario/diario/internal/retry"
)

// selector ladder for article bodies, most specific first. The first
// selector that yields enough paragraphs wins.
var bodySelectors = []string{
	"article p",
	".article-body p",
	".articulo-cuerpo p",
	".a_c p",
	".content p",
	".post-content p",
	".entry-content p",
	"main p",
	"#content p",
	"p",
}

// phrases that mark boilerplate lines in Spanish news pages
var junkIndicators = []string{
	"cookies",
	"suscríbete",
	"suscripción",
	"newsletter",
	"publicidad",
	"lee también",
	"más información",
	"síguenos",
	"comparte",
	"hazte premium",
	"regístrate",
	"política de privacidad",
}

// HTTPExtractor pulls article body text from a page with goquery.
type HTTPExtractor struct {
	client *http.Client
	retry  retry.Config
	agent  string
}

func NewHTTPExtractor(client *http.Client, retryCfg retry.Config) *HTTPExtractor {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPExtractor{
		client: client,
		retry:  retryCfg,
		agent:  "Mozilla/5.0 (compatible; DiarioBot/1.0)",
	}
}

// Extract fetches url and harvests its body paragraphs. An empty result is
// an error so callers fall through to the search path.
func (e *HTTPExtractor) Extract(ctx context.Context, url string) (string, error) {
	var body string
	err := retry.Do(ctx, e.retry, func() error {
		text, err := e.fetchOnce(ctx, url)
		if err != nil {
			return err
		}
		body = text
		return nil
	})
	if err != nil {
		return "", err
	}
	if body == "" {
		return "", fmt.Errorf("no body text found at %s", url)
	}
	return body, nil
}

func (e *HTTPExtractor) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", e.agent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("load page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	return harvestParagraphs(doc), nil
}

// harvestParagraphs walks the selector ladder and returns the cleaned body.
func harvestParagraphs(doc *goquery.Document) string {
	for _, selector := range bodySelectors {
		var paragraphs []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 && !isJunkLine(text) {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			return strings.Join(paragraphs, "\n\n")
		}
		if selector == "p" && len(paragraphs) > 0 {
			return strings.Join(paragraphs, "\n\n")
		}
	}
	return ""
}

func isJunkLine(line string) bool {
	lower := strings.ToLower(line)
	for _, indicator := range junkIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
