package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Result is one web-search hit.
type Result struct {
	Title   string
	Snippet string
}

// DuckDuckGo scrapes the HTML endpoint, which needs no API key.
type DuckDuckGo struct {
	client  *http.Client
	region  string
	baseURL string
}

func NewDuckDuckGo(client *http.Client, region string) *DuckDuckGo {
	if client == nil {
		client = http.DefaultClient
	}
	return &DuckDuckGo{
		client:  client,
		region:  region,
		baseURL: "https://html.duckduckgo.com/html/",
	}
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, max int) ([]Result, error) {
	q := url.Values{}
	q.Set("q", query)
	if d.region != "" {
		q.Set("kl", d.region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; DiarioBot/1.0)")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search HTTP error %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}

	var results []Result
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(results) >= max {
			return false
		}
		title := strings.TrimSpace(s.Find(".result__a").First().Text())
		snippet := strings.TrimSpace(s.Find(".result__snippet").First().Text())
		if snippet == "" {
			return true
		}
		results = append(results, Result{Title: title, Snippet: snippet})
		return true
	})

	return results, nil
}
