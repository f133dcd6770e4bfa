// Package site assembles the static site: one directory per edition date,
// one page per article, a day index, the mirrored root index, and the
// archive selector present on every page.
package site

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"

	"github.com/autodiario/diario/internal/config"
	"github.com/autodiario/diario/internal/generate"
	"github.com/autodiario/diario/internal/logger"
	"github.com/autodiario/diario/internal/metrics"
)

const (
	// Index layout contract: one hero, up to four cards, rest as briefs.
	cardCount   = 4
	excerptLen  = 160
	dateLayout  = "2006-01-02"
	dirPerm     = 0o755
	filePerm    = 0o644
	heroPostIdx = 1 + cardCount
)

// Edition is the immutable result of one assembly run.
type Edition struct {
	Date      time.Time
	Articles  []generate.Article
	OutputDir string
}

type Assembler struct {
	outputDir string
	siteTitle string
	tagline   string
	md        goldmark.Markdown
}

func NewAssembler(cfg *config.Config) *Assembler {
	return &Assembler{
		outputDir: cfg.OutputDir,
		siteTitle: cfg.SiteTitle,
		tagline:   cfg.Tagline,
		md:        goldmark.New(),
	}
}

// Assemble writes the edition for date. Articles keep their given order:
// the first is the lead story. The root index is only touched after every
// day page has been written, so a failed run never corrupts the published
// site. Calling Assemble with no articles is an error.
func (a *Assembler) Assemble(date time.Time, articles []generate.Article) (*Edition, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("refusing to assemble an empty edition")
	}

	dayName := date.Format(dateLayout)
	dayDir := filepath.Join(a.outputDir, dayName)
	if err := os.MkdirAll(dayDir, dirPerm); err != nil {
		return nil, fmt.Errorf("create edition dir: %w", err)
	}

	editions, err := a.ListEditions()
	if err != nil {
		return nil, err
	}

	slugs := newSlugTable()
	pages := make([]string, len(articles))
	for i, art := range articles {
		pages[i] = slugs.take(art.Headline) + ".html"
	}

	for i, art := range articles {
		if err := a.writeArticlePage(dayDir, dayName, pages[i], art, editions); err != nil {
			return nil, err
		}
	}

	if err := a.writeIndex(filepath.Join(dayDir, "index.html"), dayName, articles, pages, "", dayArchive(editions)); err != nil {
		return nil, err
	}

	// Root mirrors the day index; article links gain the day prefix.
	if err := a.writeIndex(filepath.Join(a.outputDir, "index.html"), dayName, articles, pages, dayName+"/", rootArchive(editions)); err != nil {
		return nil, err
	}

	metrics.Global.AddPagesWritten(len(articles) + 2)
	logger.Info("edition assembled", "date", dayName, "articles", len(articles), "dir", dayDir)

	return &Edition{Date: date, Articles: articles, OutputDir: dayDir}, nil
}

func (a *Assembler) writeArticlePage(dayDir, dayName, page string, art generate.Article, editions []string) error {
	data := articleData{
		SiteTitle: a.siteTitle,
		Date:      dayName,
		Article: articleView{
			Headline: art.Headline,
			Dek:      art.Dek,
			Section:  art.Section,
			Author:   art.AuthorLabel,
			Image:    art.ImageURL,
			BodyHTML: renderBody(a.md, art.Body),
		},
		SourceURL: art.SourceURL,
		IndexHref: "index.html",
		Archive:   dayArchive(editions),
	}
	return writeTemplate(filepath.Join(dayDir, page), "article", data)
}

func (a *Assembler) writeIndex(path, dayName string, articles []generate.Article, pages []string, prefix string, archive []archiveLink) error {
	views := make([]articleView, len(articles))
	for i, art := range articles {
		views[i] = articleView{
			Headline: art.Headline,
			Dek:      art.Dek,
			Section:  art.Section,
			Author:   art.AuthorLabel,
			Image:    art.ImageURL,
			Href:     prefix + pages[i],
			BodyHTML: renderBody(a.md, art.Body),
			Excerpt:  excerpt(art.Body, excerptLen),
		}
	}

	data := indexData{
		SiteTitle: a.siteTitle,
		Tagline:   a.tagline,
		Date:      dayName,
		Hero:      &views[0],
		Archive:   archive,
	}
	if len(views) > 1 {
		end := heroPostIdx
		if end > len(views) {
			end = len(views)
		}
		data.Cards = views[1:end]
	}
	if len(views) > heroPostIdx {
		data.Briefs = views[heroPostIdx:]
	}

	return writeTemplate(path, "index", data)
}

// dayArchive builds archive links as seen from inside a day directory.
func dayArchive(editions []string) []archiveLink {
	links := make([]archiveLink, 0, len(editions))
	for _, d := range editions {
		links = append(links, archiveLink{Date: d, Href: "../" + d + "/index.html"})
	}
	return links
}

// rootArchive builds archive links as seen from the site root.
func rootArchive(editions []string) []archiveLink {
	links := make([]archiveLink, 0, len(editions))
	for _, d := range editions {
		links = append(links, archiveLink{Date: d, Href: d + "/index.html"})
	}
	return links
}

func writeTemplate(path, name string, data any) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	tmpl := indexTemplate
	if name == "article" {
		tmpl = articleTemplate
	}
	if err := tmpl.ExecuteTemplate(f, name, data); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
