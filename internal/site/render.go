package site

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
)

// renderBody converts a Markdown article body to HTML. On a conversion
// failure the body is downgraded to escaped paragraphs rather than dropped:
// the article already passed structural validation.
func renderBody(md goldmark.Markdown, body string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		var b strings.Builder
		for _, para := range strings.Split(body, "\n\n") {
			b.WriteString("<p>")
			b.WriteString(template.HTMLEscapeString(para))
			b.WriteString("</p>\n")
		}
		return template.HTML(b.String())
	}
	return template.HTML(buf.String())
}

// excerpt flattens Markdown to plain text and truncates it at a word
// boundary for the compact text-only entries.
func excerpt(body string, maxRunes int) string {
	plain := strings.NewReplacer("#", "", "*", "", "_", "", "`", "").Replace(body)
	plain = strings.Join(strings.Fields(plain), " ")
	if utf8.RuneCountInString(plain) <= maxRunes {
		return plain
	}
	runes := []rune(plain)
	cut := string(runes[:maxRunes])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
