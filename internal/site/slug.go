package site

import (
	"strconv"
	"strings"
	"unicode"
)

const maxSlugLen = 60

// accentFold maps the Spanish accented letters to their base forms so slugs
// stay plain ASCII.
var accentFold = map[rune]rune{
	'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u', 'ü': 'u', 'ñ': 'n',
	'à': 'a', 'è': 'e', 'ì': 'i', 'ò': 'o', 'ù': 'u', 'ç': 'c',
}

// Slug derives a filesystem-safe filename stem from a headline: lowercase,
// accents folded, non-alphanumerics dropped, whitespace collapsed to
// hyphens, capped in length.
func Slug(headline string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(headline) {
		if folded, ok := accentFold[r]; ok {
			r = folded
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteRune(' ')
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
		slug = strings.TrimRight(slug, "-")
	}
	if slug == "" {
		slug = "articulo"
	}
	return slug
}

// slugTable hands out slugs, suffixing "-2", "-3", ... when two headlines
// normalize to the same name instead of silently overwriting the first.
type slugTable struct {
	used map[string]int
}

func newSlugTable() *slugTable {
	return &slugTable{used: make(map[string]int)}
}

func (t *slugTable) take(headline string) string {
	base := Slug(headline)
	t.used[base]++
	if n := t.used[base]; n > 1 {
		return base + "-" + strconv.Itoa(n)
	}
	return base
}
