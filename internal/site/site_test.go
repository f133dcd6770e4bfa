package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/autodiario/diario/internal/config"
	"github.com/autodiario/diario/internal/generate"
)

func testAssembler(t *testing.T) *Assembler {
	t.Helper()
	return NewAssembler(&config.Config{
		SiteTitle: "El Diario Autónomo",
		Tagline:   "Escrito por IA",
		OutputDir: t.TempDir(),
	})
}

func makeArticles(n int) []generate.Article {
	arts := make([]generate.Article, n)
	for i := range arts {
		arts[i] = generate.Article{
			Headline:    fmt.Sprintf("Titular número %d de la edición", i),
			Dek:         fmt.Sprintf("Resumen en una frase del artículo %d.", i),
			Body:        fmt.Sprintf("Primer párrafo del artículo %d.\n\nSegundo párrafo con más detalle.", i),
			Section:     "politica",
			AuthorLabel: "Redacción Autónoma",
			ImageURL:    "https://img.example/foto.jpg",
			SourceURL:   fmt.Sprintf("https://n.example/%d", i),
		}
	}
	return arts
}

func editionDate() time.Time {
	return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestAssemble_WritesDayLayout(t *testing.T) {
	a := testAssembler(t)

	edition, err := a.Assemble(editionDate(), makeArticles(7))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if filepath.Base(edition.OutputDir) != "2026-08-29" {
		t.Errorf("edition dir: %s", edition.OutputDir)
	}

	index := readFile(t, filepath.Join(edition.OutputDir, "index.html"))

	// 1/4/N layout: article 0 is the hero, 1-4 are cards, 5-6 are briefs.
	if got := strings.Count(index, `<article class="hero">`); got != 1 {
		t.Errorf("want exactly 1 hero, got %d", got)
	}
	if got := strings.Count(index, `<article class="card">`); got != 4 {
		t.Errorf("want exactly 4 cards, got %d", got)
	}
	if got := strings.Count(index, `<div class="breve">`); got != 2 {
		t.Errorf("want exactly 2 briefs, got %d", got)
	}

	heroPos := strings.Index(index, "Titular número 0")
	cardPos := strings.Index(index, "Titular número 1")
	briefPos := strings.Index(index, "Titular número 5")
	if heroPos < 0 || cardPos < 0 || briefPos < 0 || !(heroPos < cardPos && cardPos < briefPos) {
		t.Errorf("layout order wrong: hero=%d card=%d brief=%d", heroPos, cardPos, briefPos)
	}

	// Hero carries the full body preview; briefs only an excerpt.
	if !strings.Contains(index, "Segundo párrafo con más detalle.") {
		t.Error("hero should render the body")
	}
}

func TestAssemble_ArticlePagesWritten(t *testing.T) {
	a := testAssembler(t)
	arts := makeArticles(2)

	edition, err := a.Assemble(editionDate(), arts)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	page := readFile(t, filepath.Join(edition.OutputDir, Slug(arts[0].Headline)+".html"))
	if !strings.Contains(page, arts[0].Headline) {
		t.Error("article page missing headline")
	}
	if !strings.Contains(page, "<p>Primer párrafo del artículo 0.</p>") {
		t.Error("article body should be rendered to HTML paragraphs")
	}
	if !strings.Contains(page, arts[0].SourceURL) {
		t.Error("article page should link the original source")
	}
}

func TestAssemble_SlugCollisionDoesNotOverwrite(t *testing.T) {
	a := testAssembler(t)
	arts := makeArticles(2)
	arts[1].Headline = arts[0].Headline // same slug

	edition, err := a.Assemble(editionDate(), arts)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	base := Slug(arts[0].Headline)
	if _, err := os.Stat(filepath.Join(edition.OutputDir, base+".html")); err != nil {
		t.Errorf("first page missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(edition.OutputDir, base+"-2.html")); err != nil {
		t.Errorf("collision page missing: %v", err)
	}
}

func TestAssemble_RootMirrorsDayWithPrefixedLinks(t *testing.T) {
	a := testAssembler(t)
	arts := makeArticles(3)

	if _, err := a.Assemble(editionDate(), arts); err != nil {
		t.Fatalf("assemble: %v", err)
	}

	root := readFile(t, filepath.Join(a.outputDir, "index.html"))
	day := readFile(t, filepath.Join(a.outputDir, "2026-08-29", "index.html"))

	slug0 := Slug(arts[0].Headline) + ".html"
	if !strings.Contains(root, `href="2026-08-29/`+slug0+`"`) {
		t.Error("root index must prefix article links with the day directory")
	}
	if !strings.Contains(day, `href="`+slug0+`"`) {
		t.Error("day index links articles without a prefix")
	}
	if !strings.Contains(root, arts[0].Headline) {
		t.Error("root mirrors the latest edition content")
	}
}

func TestAssemble_ArchiveSelector(t *testing.T) {
	a := testAssembler(t)
	prior := []string{"2026-08-25", "2026-08-27", "2026-08-26"}
	for _, d := range prior {
		if err := os.MkdirAll(filepath.Join(a.outputDir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// A non-edition directory must be ignored by the scan.
	os.MkdirAll(filepath.Join(a.outputDir, "assets"), 0o755)

	if _, err := a.Assemble(editionDate(), makeArticles(1)); err != nil {
		t.Fatalf("assemble: %v", err)
	}

	day := readFile(t, filepath.Join(a.outputDir, "2026-08-29", "index.html"))
	root := readFile(t, filepath.Join(a.outputDir, "index.html"))

	wantOrder := []string{"2026-08-29", "2026-08-27", "2026-08-26", "2026-08-25"}
	lastPos := -1
	for _, d := range wantOrder {
		pos := strings.Index(day, `href="../`+d+`/index.html"`)
		if pos < 0 {
			t.Fatalf("day archive missing %s", d)
		}
		if pos < lastPos {
			t.Errorf("archive not reverse-chronological at %s", d)
		}
		lastPos = pos
	}

	for _, d := range wantOrder {
		if !strings.Contains(root, `href="`+d+`/index.html"`) {
			t.Errorf("root archive missing %s", d)
		}
	}
	if strings.Contains(day, "assets") {
		t.Error("non-edition directories must not appear in the archive")
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	a := testAssembler(t)
	arts := makeArticles(5)

	if _, err := a.Assemble(editionDate(), arts); err != nil {
		t.Fatal(err)
	}
	dayFirst := readFile(t, filepath.Join(a.outputDir, "2026-08-29", "index.html"))
	rootFirst := readFile(t, filepath.Join(a.outputDir, "index.html"))

	if _, err := a.Assemble(editionDate(), arts); err != nil {
		t.Fatal(err)
	}
	daySecond := readFile(t, filepath.Join(a.outputDir, "2026-08-29", "index.html"))
	rootSecond := readFile(t, filepath.Join(a.outputDir, "index.html"))

	if dayFirst != daySecond {
		t.Error("day index must be byte-identical across reruns")
	}
	if rootFirst != rootSecond {
		t.Error("root index must be byte-identical across reruns")
	}
}

func TestAssemble_RejectsEmptyEdition(t *testing.T) {
	a := testAssembler(t)

	sentinel := filepath.Join(a.outputDir, "index.html")
	if err := os.WriteFile(sentinel, []byte("edición anterior intacta"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := a.Assemble(editionDate(), nil); err == nil {
		t.Fatal("empty edition must be rejected")
	}
	if got := readFile(t, sentinel); got != "edición anterior intacta" {
		t.Errorf("root index was clobbered: %q", got)
	}
}

func TestListEditions(t *testing.T) {
	a := testAssembler(t)
	for _, name := range []string{"2026-01-02", "2026-01-10", "2026-01-05", "borradores"} {
		os.MkdirAll(filepath.Join(a.outputDir, name), 0o755)
	}
	os.WriteFile(filepath.Join(a.outputDir, "2026-02-02"), []byte("file, not dir"), 0o644)

	got, err := a.ListEditions()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2026-01-10", "2026-01-05", "2026-01-02"}
	if len(got) != len(want) {
		t.Fatalf("ListEditions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestListEditions_MissingDir(t *testing.T) {
	a := NewAssembler(&config.Config{OutputDir: filepath.Join(t.TempDir(), "nunca-creado")})
	got, err := a.ListEditions()
	if err != nil {
		t.Fatalf("missing output dir is not an error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("want empty archive, got %v", got)
	}
}
