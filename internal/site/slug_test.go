package site

import (
	"strings"
	"testing"
)

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Gobierno anuncia reforma fiscal", "gobierno-anuncia-reforma-fiscal"},
		{"¡España gana! (otra vez)", "espana-gana-otra-vez"},
		{"Economía: el año de la inflación", "economia-el-ano-de-la-inflacion"},
		{"   espacios   por   todas   partes   ", "espacios-por-todas-partes"},
		{"???", "articulo"},
	}
	for _, tc := range cases {
		if got := Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlug_LengthCapped(t *testing.T) {
	long := strings.Repeat("palabra ", 40)
	got := Slug(long)
	if len(got) > maxSlugLen {
		t.Errorf("slug too long: %d runes (%q)", len(got), got)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug must not end in a hyphen: %q", got)
	}
}

func TestSlug_Deterministic(t *testing.T) {
	if Slug("El mismo titular") != Slug("El mismo titular") {
		t.Error("slug derivation must be deterministic")
	}
}

func TestSlugTable_CollisionsSuffixed(t *testing.T) {
	table := newSlugTable()
	first := table.take("Mismo titular")
	second := table.take("Mismo titular")
	third := table.take("Mismo titular")

	if first != "mismo-titular" {
		t.Errorf("first slug: %q", first)
	}
	if second != "mismo-titular-2" || third != "mismo-titular-3" {
		t.Errorf("collisions should get sequence suffixes, got %q / %q", second, third)
	}
}
